/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/clinmicro/evtyper/cmd"

func main() {
	cmd.Execute()
}
