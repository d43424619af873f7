package fortune

import "fmt"

const (
	// 流年固定为 2026 丙午火马年
	currentYear     = 2026
	currentYearSign = "Year of the Fire Horse (Bing Wu)"
)

const promptTemplate = `
You are a Grandmaster of Chinese Metaphysics. The current year is %d, the %s.

Input Data:
Name: %s
Gender: %s
DOB: %s

%s

Your Task:
Generate a personalized Fengshui report for %d.
You must output STRICT VALID JSON. Do not include markdown code blocks.

JSON Structure:
{
  "zodiac": "String (English Zodiac Sign)",
  "zodiac_zh": "String (Chinese Zodiac Sign)",
  "element": "String (Birth Element)",
  "element_zh": "String (Birth Element in Chinese)",
  "kua": "Number",
  "overview": "String (General luck summary in English)",
  "overview_zh": "String (General luck summary in Chinese)",
  "pillars": {
    "career": {
      "score": Number (1-10),
      "text": "String (Career prediction in English)",
      "text_zh": "String (Career prediction in Chinese)"
    },
    "wealth": {
      "score": Number (1-10),
      "text": "String (Wealth prediction in English)",
      "text_zh": "String (Wealth prediction in Chinese)"
    },
    "love": {
      "score": Number (1-10),
      "text": "String (Love prediction in English)",
      "text_zh": "String (Love prediction in Chinese)"
    },
    "health": {
      "score": Number (1-10),
      "text": "String (Health prediction in English)",
      "text_zh": "String (Health prediction in Chinese)"
    }
  },
  "lucky": {
    "colors": ["String (English)", "String (English)"],
    "colors_zh": ["String (Chinese)", "String (Chinese)"],
    "numbers": ["String", "String"],
    "numbers_zh": ["String", "String"],
    "directions": ["String (English)", "String (English)"],
    "directions_zh": ["String (Chinese)", "String (Chinese)"]
  }
}

Tone: Mystical but practical. Provide specific advice for each pillar.
`

// BuildPrompt 由用户输入确定性地生成提示词
// 除出生时间决定的那一句分析指令外，相同输入产生逐字节相同的结果
func BuildPrompt(name, gender, dob, birthTime string) string {
	var analysis string
	if birthTime != "" {
		analysis = fmt.Sprintf("The birth time is %s. Perform a deeper Four Pillars (BaZi) analysis that includes the hour pillar.", birthTime)
	} else {
		analysis = "The birth time is unknown. Base the analysis on the birth date alone, at a coarser level of detail."
	}

	return fmt.Sprintf(promptTemplate,
		currentYear, currentYearSign,
		name, gender, dob,
		analysis,
		currentYear)
}
