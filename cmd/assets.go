package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"glossa/internal/models"
	"glossa/internal/tasks"
)

// granularityValue is a pflag.Value restricted to the known token
// granularities. An empty value means "use the scheme's default".
type granularityValue struct {
	g *models.TokenGranularity
}

func (v granularityValue) String() string { return string(*v.g) }

func (v granularityValue) Set(s string) error {
	switch g := models.TokenGranularity(s); g {
	case models.GranularityWord, models.GranularitySentence:
		*v.g = g
		return nil
	default:
		return fmt.Errorf("granularity must be %q or %q, got %q",
			models.GranularityWord, models.GranularitySentence, s)
	}
}

func (v granularityValue) Type() string { return "granularity" }

var _ pflag.Value = granularityValue{}

var prefetchGranularity models.TokenGranularity

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage model assets",
}

var assetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed model assets",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		records, err := appInstance.Catalog.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No assets installed.")
			return nil
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Language", "Scheme", "Granularity"})
		for _, r := range records {
			table.Append([]string{string(r.Language), string(r.Scheme), string(r.Granularity)})
		}
		table.Render()
		return nil
	},
}

var assetsPrefetchCmd = &cobra.Command{
	Use:   "prefetch <language> <scheme>",
	Short: "Fetch a model asset ahead of use",
	Long: `Fetches the model asset for the given language and scheme. With --async
the fetch is enqueued as a background job for the worker; otherwise it runs
inline.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		language := models.LanguageCode(args[0])
		scheme := models.TagScheme(args[1])
		if !scheme.Valid() {
			return fmt.Errorf("unknown scheme %q (want lexicalClass, nameType or sentimentScore)", args[1])
		}

		granularity := prefetchGranularity
		if granularity == "" {
			granularity = scheme.DefaultGranularity()
		}

		if async, _ := cmd.Flags().GetBool("async"); async {
			task, err := tasks.NewAssetPrefetchTask(language, scheme, granularity)
			if err != nil {
				return err
			}
			info, err := appInstance.JobClient().Enqueue(task)
			if err != nil {
				return fmt.Errorf("enqueue prefetch job: %w", err)
			}
			fmt.Printf("Enqueued prefetch job %s\n", info.ID)
			return nil
		}

		if err := appInstance.Gate.Ensure(cmd.Context(), &language, scheme, granularity); err != nil {
			return err
		}
		fmt.Printf("Asset %s/%s ready.\n", language, scheme)
		return nil
	},
}

func init() {
	assetsPrefetchCmd.Flags().Bool("async", false, "Enqueue the fetch as a background job")
	assetsPrefetchCmd.Flags().Var(granularityValue{&prefetchGranularity}, "granularity",
		"Token granularity to warm (word or sentence; default per scheme)")
	assetsCmd.AddCommand(assetsListCmd)
	assetsCmd.AddCommand(assetsPrefetchCmd)
	rootCmd.AddCommand(assetsCmd)
}
