package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"glossa/internal/models"
)

var languageCmd = &cobra.Command{
	Use:   "language [text|file]",
	Short: "Identify the dominant language of a text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		result, err := appInstance.Analyzer.IdentifyLanguage(cmd.Context(), text)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(result)
		}
		printLanguageResult(result)
		return nil
	},
}

var lexicalCmd = &cobra.Command{
	Use:   "lexical [text|file]",
	Short: "Tag each word with its lexical class",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSpanAnalysis("lexical"),
}

var entitiesCmd = &cobra.Command{
	Use:   "entities [text|file]",
	Short: "Tag named entities (people, places, organizations)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSpanAnalysis("entities"),
}

var sentimentCmd = &cobra.Command{
	Use:   "sentiment [text|file]",
	Short: "Score the sentiment of each sentence",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSpanAnalysis("sentiment"),
}

func runSpanAnalysis(kind string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		var spans []models.Span
		switch kind {
		case "lexical":
			spans, err = appInstance.Analyzer.IdentifyLexical(cmd.Context(), text)
		case "entities":
			spans, err = appInstance.Analyzer.IdentifyEntities(cmd.Context(), text)
		default:
			spans, err = appInstance.Analyzer.EvaluateSentimentScore(cmd.Context(), text)
		}
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(spans)
		}
		printSpans(spans)
		return nil
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printLanguageResult(result models.LanguageIdentificationResult) {
	if result.Dominant != nil {
		fmt.Printf("Dominant language: %s\n", color.GreenString(string(*result.Dominant)))
	} else {
		fmt.Println(color.YellowString("Dominant language: undetermined"))
	}
	if len(result.Hypotheses) == 0 {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Language", "Confidence"})
	for _, lang := range sortedLanguages(result.Hypotheses) {
		table.Append([]string{string(lang), fmt.Sprintf("%.1f%%", result.Hypotheses[lang]*100)})
	}
	table.Render()
}

func printSpans(spans []models.Span) {
	if len(spans) == 0 {
		fmt.Println("No spans produced.")
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Span", "Best Tag", "Hypotheses"})
	for _, span := range spans {
		best := "-"
		if tag, prob, ok := span.BestTag(); ok {
			best = fmt.Sprintf("%s (%.1f%%)", color.CyanString(string(tag)), prob*100)
		}
		table.Append([]string{span.Text, best, formatHypotheses(span.TagHypotheses)})
	}
	table.Render()
}

func formatHypotheses(hyps map[models.Tag]float64) string {
	tags := make([]models.Tag, 0, len(hyps))
	for tag := range hyps {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if hyps[tags[i]] != hyps[tags[j]] {
			return hyps[tags[i]] > hyps[tags[j]]
		}
		return tags[i] < tags[j]
	})
	out := ""
	for i, tag := range tags {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s %.1f%%", tag, hyps[tag]*100)
	}
	return out
}

func sortedLanguages(hyps map[models.LanguageCode]float64) []models.LanguageCode {
	langs := make([]models.LanguageCode, 0, len(hyps))
	for lang := range hyps {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		if hyps[langs[i]] != hyps[langs[j]] {
			return hyps[langs[i]] > hyps[langs[j]]
		}
		return langs[i] < langs[j]
	})
	return langs
}

func init() {
	for _, c := range []*cobra.Command{languageCmd, lexicalCmd, entitiesCmd, sentimentCmd} {
		c.Flags().String("file", "", "Read input text from a file instead of the argument")
		c.Flags().Bool("json", false, "Print raw JSON output")
		rootCmd.AddCommand(c)
	}
}
