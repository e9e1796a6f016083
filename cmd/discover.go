package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/dataprep/internal/config"
	"github.com/ziadkadry99/dataprep/internal/discovery"
	"github.com/ziadkadry99/dataprep/internal/storage"
)

var (
	discoverRoot    string
	discoverExt     string
	discoverShuffle bool
	discoverSeed    uint64
	discoverLabels  []string
	discoverIDCol   string
	discoverLabCol  string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Enumerate dataset files as path/label pairs",
}

var discoverDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Discover files laid out one subdirectory per label",
	Long: `Discovers files under <root>/<label>/*.<ext> for each --label, in the
order given. Prints one "path<TAB>index" line per file. A label whose
subdirectory does not exist contributes zero files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		root, opts := discoverArgs(cfg)

		if len(discoverLabels) == 0 {
			// Fall back to the subdirectories of the root, sorted by name.
			fsys, err := backendFor(cmd.Context(), cfg, root)
			if err != nil {
				return err
			}
			discoverLabels, err = storage.SubDirs(cmd.Context(), fsys, root, cfg.Exclude...)
			if err != nil {
				return err
			}
			if verbose {
				fmt.Fprintf(os.Stderr, "using label directories: %v\n", discoverLabels)
			}
		}

		res, err := runIndexer(cmd, cfg, root, func(ix *discovery.Indexer) (*discovery.Result, error) {
			return ix.ByDirectory(cmd.Context(), root, discoverLabels, opts)
		})
		if err != nil {
			return err
		}
		printResult(res)
		return nil
	},
}

var discoverManifestCmd = &cobra.Command{
	Use:   "manifest <manifest.csv>",
	Short: "Discover files through a CSV manifest of IDs and labels",
	Long: `Reads the manifest, maps each row's ID to <root>/<id>.<ext>, and assigns
label indices from the lexicographically sorted distinct label values
(or from --label, given in index order). Prints one "path<TAB>index"
line per row, then the label set to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		root, opts := discoverArgs(cfg)
		if len(discoverLabels) > 0 {
			labels, err := discovery.NewLabelSet(discoverLabels)
			if err != nil {
				return err
			}
			opts.Labels = labels
		}

		res, err := runIndexer(cmd, cfg, root, func(ix *discovery.Indexer) (*discovery.Result, error) {
			return ix.ByManifest(cmd.Context(), root, args[0], opts)
		})
		if err != nil {
			return err
		}
		printResult(res)
		fmt.Fprintf(os.Stderr, "labels: %v\n", []string(res.LabelSet))
		return nil
	},
}

var discoverUnlabeledCmd = &cobra.Command{
	Use:   "unlabeled",
	Short: "Discover files directly under the root, without labels",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		root, opts := discoverArgs(cfg)

		fsys, err := backendFor(cmd.Context(), cfg, root)
		if err != nil {
			return err
		}
		paths, err := newIndexer(fsys).Unlabeled(cmd.Context(), root, opts)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}

// discoverArgs merges config defaults with the discover flags.
func discoverArgs(cfg *config.Config) (string, discovery.Options) {
	root := discoverRoot
	if root == "" {
		root = cfg.Root
	}
	ext := discoverExt
	if ext == "" {
		ext = cfg.FileExt
	}
	idCol := discoverIDCol
	if idCol == "" {
		idCol = cfg.IDColumn
	}
	labCol := discoverLabCol
	if labCol == "" {
		labCol = cfg.LabelColumn
	}
	return root, discovery.Options{
		FileExt:     ext,
		Shuffle:     discoverShuffle,
		IDColumn:    idCol,
		LabelColumn: labCol,
	}
}

// newIndexer builds an indexer honouring the --seed flag.
func newIndexer(fsys storage.FS) *discovery.Indexer {
	if discoverSeed != 0 {
		return discovery.NewSeeded(fsys, discoverSeed)
	}
	return discovery.New(fsys)
}

func runIndexer(cmd *cobra.Command, cfg *config.Config, root string,
	run func(*discovery.Indexer) (*discovery.Result, error)) (*discovery.Result, error) {
	fsys, err := backendFor(cmd.Context(), cfg, root)
	if err != nil {
		return nil, err
	}
	return run(newIndexer(fsys))
}

func printResult(res *discovery.Result) {
	for i, p := range res.Paths {
		fmt.Printf("%s\t%d\n", p, res.Labels[i])
	}
}

func init() {
	for _, c := range []*cobra.Command{discoverDirCmd, discoverManifestCmd, discoverUnlabeledCmd} {
		c.Flags().StringVar(&discoverRoot, "root", "", "dataset root (default from config)")
		c.Flags().StringVar(&discoverExt, "ext", "", "file extension without dot (default from config)")
		c.Flags().BoolVar(&discoverShuffle, "shuffle", false, "shuffle the output, keeping path/label pairing")
		c.Flags().Uint64Var(&discoverSeed, "seed", 0, "shuffle seed for reproducible output (0 = random)")
		discoverCmd.AddCommand(c)
	}
	discoverDirCmd.Flags().StringSliceVar(&discoverLabels, "label", nil, "label names in index order (default: sorted subdirectories of root)")
	discoverManifestCmd.Flags().StringSliceVar(&discoverLabels, "label", nil, "explicit label set in index order (default: derived from manifest)")
	discoverManifestCmd.Flags().StringVar(&discoverIDCol, "id-column", "", "manifest ID column (default from config)")
	discoverManifestCmd.Flags().StringVar(&discoverLabCol, "label-column", "", "manifest label column (default from config)")
	rootCmd.AddCommand(discoverCmd)
}
