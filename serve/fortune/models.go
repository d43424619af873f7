package fortune

// ReqFortune 算命请求体
// birthTime 可为空，language 只影响前端展示，服务端不使用
type ReqFortune struct {
	Name      string `json:"name" binding:"required"`
	DOB       string `json:"dob" binding:"required"`
	BirthTime string `json:"birthTime"`
	Gender    string `json:"gender" binding:"required,oneof=male female"`
	Language  string `json:"language" binding:"omitempty,oneof=en zh"`
}

// Pillar 单项运势预测，分数 1-10，中英文解读
type Pillar struct {
	Score  int    `json:"score"`
	Text   string `json:"text"`
	TextZh string `json:"text_zh"`
}

// Pillars 四大运势
type Pillars struct {
	Career Pillar `json:"career"`
	Wealth Pillar `json:"wealth"`
	Love   Pillar `json:"love"`
	Health Pillar `json:"health"`
}

// Lucky 幸运属性，中英文平行数组
type Lucky struct {
	Colors       []string `json:"colors"`
	ColorsZh     []string `json:"colors_zh"`
	Numbers      []string `json:"numbers"`
	NumbersZh    []string `json:"numbers_zh"`
	Directions   []string `json:"directions"`
	DirectionsZh []string `json:"directions_zh"`
}

// FortuneReport 模型返回的运势报告，服务端解析后原样返回
type FortuneReport struct {
	Zodiac     string  `json:"zodiac"`
	ZodiacZh   string  `json:"zodiac_zh"`
	Element    string  `json:"element"`
	ElementZh  string  `json:"element_zh"`
	Kua        int     `json:"kua"`
	Overview   string  `json:"overview"`
	OverviewZh string  `json:"overview_zh"`
	Pillars    Pillars `json:"pillars"`
	Lucky      Lucky   `json:"lucky"`
}
