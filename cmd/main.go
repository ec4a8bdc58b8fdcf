package main

import "github.com/spf13/cobra"

var mainCMD = &cobra.Command{
	Use:   "qbank",
	Short: "Build question banks from scanned images",
	Long:  "Extracts questions from images with OCR, collects question and answer pairs and exports them as a document.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	addConfigFlags(mainCMD)
	mainCMD.AddCommand(scanCMD, buildCMD, serveCMD)
}

func main() {
	if err := mainCMD.Execute(); err != nil {
		panic(err)
	}
}
