package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/projector"
)

var (
	layoutTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("12")).
				MarginTop(1).
				MarginBottom(1)

	layoutNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	layoutDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List the built-in layout variants",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(layoutTitleStyle.Render("Available Layouts"))
		for _, v := range projector.Variants() {
			fmt.Printf("  %s  %s\n", layoutNameStyle.Render(v.ID()), v.Name())
			fmt.Printf("      %s\n", layoutDescStyle.Render(v.Description()))
		}
	},
}

func init() {
	rootCmd.AddCommand(layoutsCmd)
}
