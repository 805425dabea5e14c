package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
	"github.com/million-dollar-projects/mumskids-sub000/internal/problemgen"
	"github.com/million-dollar-projects/mumskids-sub000/internal/rewards"
	"github.com/million-dollar-projects/mumskids-sub000/internal/store"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Create, list, show and delete practices",
}

var practiceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a practice from flags or a TOML file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		var p *practice.Practice
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			if p, err = practice.LoadFile(file); err != nil {
				return err
			}
		} else if p, err = practiceFromFlags(cmd, rewards.DefaultCatalog(), cfg.Locale); err != nil {
			return err
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.PracticeRepo().Create(cmd.Context(), p); err != nil {
			return fmt.Errorf("save practice: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", p.ID, p.Title)
		return nil
	},
}

var practiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored practices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		list, err := st.PracticeRepo().List(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("list practices: %w", err)
		}
		printPractices(cmd.OutOrStdout(), list)
		return nil
	},
}

var practiceShowCmd = &cobra.Command{
	Use:   "show <practice-id>",
	Short: "Print a practice as TOML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := loadPractice(cmd, st, args[0])
		if err != nil {
			return err
		}
		data, err := p.Encode()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", p.Summary())
		if p.HasRewards() {
			fmt.Fprintf(out, "# reward: %s\n", p.EffectiveCondition().Describe())
		}
		_, err = out.Write(data)
		return err
	},
}

var practiceDeleteCmd = &cobra.Command{
	Use:   "delete <practice-id>",
	Short: "Delete a practice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.PracticeRepo().Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete practice %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	f := practiceCreateCmd.Flags()
	f.String("file", "", "Read the practice from a TOML file; other flags are ignored")
	f.String("title", "", "Practice title")
	f.String("tier", string(problemgen.TierWithin10), "Number range: within10, within20, within50, within100")
	f.String("mode", string(problemgen.ModeAdd), "Calculation: add, sub, addsub")
	f.Bool("carry", false, "Addition questions must carry")
	f.Bool("borrow", false, "Subtraction questions must borrow")
	f.String("test", string(practice.TestNormal), "Test mode: normal (fixed questions) or timed")
	f.Int("questions", 10, "Number of questions (normal mode)")
	f.Int("minutes", 5, "Time limit in minutes (timed mode)")
	f.Bool("multiple-choice", false, "Offer four options instead of typed answers")
	f.StringArray("reward", nil, "Reward: a catalog id (icecream, park, ...), id=text, or plain text; repeatable")
	f.String("distribution", string(practice.DistributeRandom), "How a reward is chosen: random or choice")
	f.Int("target-correct", 0, "Normal mode: correct answers needed for a reward")
	f.Int("max-minutes", 0, "Normal mode: minutes allowed for a reward")
	f.Int("min-correct", 0, "Timed mode: correct answers needed for a reward")
	f.Float64("max-error-rate", 0, "Timed mode: highest error rate in percent for a reward")
	f.String("theme", "", "Decoration theme: space, animals, ocean, dinosaurs")

	practiceListCmd.Flags().Int("limit", 0, "Show at most this many practices")

	practiceCmd.AddCommand(practiceCreateCmd)
	practiceCmd.AddCommand(practiceListCmd)
	practiceCmd.AddCommand(practiceShowCmd)
	practiceCmd.AddCommand(practiceDeleteCmd)
}

// practiceFromFlags builds a practice from create flags. Flag-made
// practices get the same question floor as ones made in the UI.
func practiceFromFlags(cmd *cobra.Command, catalog *rewards.Catalog, locale string) (*practice.Practice, error) {
	f := cmd.Flags()
	title, _ := f.GetString("title")
	p := practice.New(strings.TrimSpace(title))

	var err error
	tier, _ := f.GetString("tier")
	if p.Tier, err = problemgen.ParseTier(tier); err != nil {
		return nil, err
	}
	mode, _ := f.GetString("mode")
	if p.Mode, err = problemgen.ParseMode(mode); err != nil {
		return nil, err
	}
	test, _ := f.GetString("test")
	if p.TestMode, err = practice.ParseTestMode(test); err != nil {
		return nil, err
	}
	p.Carry, _ = f.GetBool("carry")
	p.Borrow, _ = f.GetBool("borrow")
	p.MultipleChoice, _ = f.GetBool("multiple-choice")
	p.Theme, _ = f.GetString("theme")

	if p.TestMode == practice.TestTimed {
		p.QuestionCount = 0
		p.TimeLimitMinutes, _ = f.GetInt("minutes")
	} else {
		p.QuestionCount, _ = f.GetInt("questions")
	}

	rewardArgs, _ := f.GetStringArray("reward")
	for i, raw := range rewardArgs {
		p.Rewards = append(p.Rewards, parseReward(raw, i, catalog, locale))
	}
	dist, _ := f.GetString("distribution")
	if p.Distribution, err = practice.ParseDistributionMode(dist); err != nil {
		return nil, err
	}

	if cond, ok := conditionFromFlags(cmd, p.TestMode); ok {
		p.Condition = &cond
	}

	if err := p.ValidateForUI(); err != nil {
		return nil, err
	}
	return p, nil
}

// conditionFromFlags returns a custom condition when any threshold flag
// for the test mode was given.
func conditionFromFlags(cmd *cobra.Command, mode practice.TestMode) (practice.Condition, bool) {
	f := cmd.Flags()
	if mode == practice.TestTimed {
		if !f.Changed("min-correct") && !f.Changed("max-error-rate") {
			return practice.Condition{}, false
		}
		c := practice.DefaultCondition(mode, 0, 0)
		if f.Changed("min-correct") {
			c.MinCorrect, _ = f.GetInt("min-correct")
		}
		if f.Changed("max-error-rate") {
			c.MaxErrorRatePercent, _ = f.GetFloat64("max-error-rate")
		}
		return c, true
	}

	if !f.Changed("target-correct") && !f.Changed("max-minutes") {
		return practice.Condition{}, false
	}
	n, _ := f.GetInt("questions")
	c := practice.DefaultCondition(mode, n, 0)
	if f.Changed("target-correct") {
		c.TargetCorrect, _ = f.GetInt("target-correct")
	}
	if f.Changed("max-minutes") {
		c.MaxTimeMinutes, _ = f.GetInt("max-minutes")
	}
	return c, true
}

// parseReward accepts a catalog id, "id=text", or free text.
func parseReward(raw string, i int, catalog *rewards.Catalog, locale string) practice.Reward {
	raw = strings.TrimSpace(raw)
	if r, ok := catalog.Reward(raw, locale); ok {
		return r
	}
	if id, text, ok := strings.Cut(raw, "="); ok && strings.TrimSpace(id) != "" {
		return practice.Reward{ID: strings.TrimSpace(id), Text: strings.TrimSpace(text)}
	}
	return practice.Reward{ID: fmt.Sprintf("reward-%d", i+1), Text: raw}
}

func printPractices(w io.Writer, list []*practice.Practice) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No practices yet. Create one with: mumskids practice create --title ...")
		return
	}
	fmt.Fprintf(w, "%-36s  %-24s  %s\n", "ID", "Title", "Settings")
	fmt.Fprintln(w, strings.Repeat("─", 100))
	for _, p := range list {
		title := p.Title
		if len([]rune(title)) > 24 {
			title = string([]rune(title)[:23]) + "…"
		}
		fmt.Fprintf(w, "%-36s  %-24s  %s\n", p.ID, title, p.Summary())
	}
}
