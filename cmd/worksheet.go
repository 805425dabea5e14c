package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/million-dollar-projects/mumskids-sub000/internal/config"
	"github.com/million-dollar-projects/mumskids-sub000/internal/llm"
	"github.com/million-dollar-projects/mumskids-sub000/internal/problemgen"
	"github.com/million-dollar-projects/mumskids-sub000/internal/rewards"
	"github.com/million-dollar-projects/mumskids-sub000/internal/storygen"
	"github.com/million-dollar-projects/mumskids-sub000/internal/worksheet"
)

// storyTimeout bounds the whole story batch, not one request.
const storyTimeout = 3 * time.Minute

var worksheetCmd = &cobra.Command{
	Use:   "worksheet",
	Short: "Generate a printable worksheet with an answer key",
	Long: "Generate a printable worksheet with an answer key.\n\n" +
		"Settings come from a stored practice (--practice) or from flags.\n" +
		"With --stories each question is worded as a short story problem by the\n" +
		"configured LLM provider; the numbers still come from the generator.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		f := cmd.Flags()
		outPath, _ := f.GetString("out")
		asText, _ := f.GetBool("text")
		withStories, _ := f.GetBool("stories")
		if outPath == "" && !asText {
			return errors.New("--out is required for PDF output")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		opts, err := worksheetOptions(cmd, cfg)
		if err != nil {
			return err
		}
		if id, _ := f.GetString("practice"); id != "" {
			p, err := loadPractice(cmd, st, id)
			if err != nil {
				return err
			}
			count := opts.Count
			if !f.Changed("count") {
				count = 0
			}
			fromPractice := worksheet.FromPractice(p, count)
			fromPractice.Relaxed = opts.Relaxed
			fromPractice.Name, fromPractice.Columns, fromPractice.Locale = opts.Name, opts.Columns, opts.Locale
			if fromPractice.Theme == "" {
				fromPractice.Theme = opts.Theme
			}
			if f.Changed("title") {
				fromPractice.Title = opts.Title
			}
			opts = fromPractice
		}
		if withStories {
			opts.Columns = 1
		}

		sheet, err := worksheet.Build(problemgen.NewRandom(), opts, time.Now())
		if err != nil {
			return err
		}

		if withStories {
			llmCfg := cfg.LLM.WithDefaults()
			if !llmCfg.Enabled() {
				return errors.New("story problems need an LLM provider; set [llm] provider in the config or an API key")
			}
			provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo())
			if err != nil {
				return err
			}
			storyCtx, cancel := context.WithTimeout(ctx, storyTimeout)
			defer cancel()
			gen := storygen.New(provider, rewards.DefaultCatalog(), storygen.DefaultConfig())
			if err := sheet.AddStories(storyCtx, gen); err != nil {
				slog.Warn("some stories could not be written; using plain questions for those", "err", err)
			}
		}

		if asText {
			if outPath == "" {
				return sheet.WriteText(cmd.OutOrStdout())
			}
			return writeFile(outPath, sheet.WriteText)
		}

		fontFile, _ := f.GetString("font-file")
		pdfCfg := worksheet.PDFConfig{
			PageSize:   cfg.Worksheet.PageSize,
			MarginsMM:  cfg.Worksheet.MarginsMM,
			FontFamily: cfg.Worksheet.Font,
			FontFile:   fontFile,
		}
		if err := writeFile(outPath, func(w io.Writer) error { return worksheet.RenderPDF(w, sheet, pdfCfg) }); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d questions to %s\n", len(sheet.Questions), outPath)
		return nil
	},
}

func init() {
	f := worksheetCmd.Flags()
	f.String("practice", "", "Use the settings of a stored practice")
	f.String("title", "", "Worksheet title")
	f.String("name", "", "Learner name printed in the header")
	f.String("tier", string(problemgen.TierWithin10), "Number range: within10, within20, within50, within100")
	f.String("mode", string(problemgen.ModeAdd), "Calculation: add, sub, addsub")
	f.Bool("carry", false, "Addition questions must carry")
	f.Bool("borrow", false, "Subtraction questions must borrow")
	f.Bool("mixed", false, "Allow regrouping even when carry/borrow is off")
	f.Int("count", worksheet.DefaultCount, "Number of questions")
	f.Int("columns", 0, "Questions per row (default from config)")
	f.String("theme", "", "Story theme (default from config)")
	f.Bool("stories", false, "Word questions as story problems using the LLM provider")
	f.Bool("text", false, "Write plain text instead of PDF")
	f.String("font-file", "", "UTF-8 TrueType font for non-Latin stories")
	f.String("out", "", "Output file")
}

// worksheetOptions reads generator and layout flags over config defaults.
func worksheetOptions(cmd *cobra.Command, cfg config.Config) (worksheet.Options, error) {
	f := cmd.Flags()
	var (
		opts worksheet.Options
		err  error
	)
	tier, _ := f.GetString("tier")
	if opts.Tier, err = problemgen.ParseTier(tier); err != nil {
		return opts, err
	}
	mode, _ := f.GetString("mode")
	if opts.Mode, err = problemgen.ParseMode(mode); err != nil {
		return opts, err
	}
	opts.Carry, _ = f.GetBool("carry")
	opts.Borrow, _ = f.GetBool("borrow")
	opts.Relaxed, _ = f.GetBool("mixed")
	opts.Count, _ = f.GetInt("count")
	opts.Title, _ = f.GetString("title")
	opts.Name, _ = f.GetString("name")
	opts.Locale = cfg.Locale

	opts.Columns, _ = f.GetInt("columns")
	if opts.Columns == 0 {
		opts.Columns = cfg.Worksheet.Columns
	}
	opts.Theme, _ = f.GetString("theme")
	if opts.Theme == "" {
		opts.Theme = cfg.Worksheet.Theme
	}
	return opts, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
