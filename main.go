/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ogdev97/isuanming/cmd"

func main() {
	cmd.Execute()
}
