package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
	"github.com/million-dollar-projects/mumskids-sub000/internal/problemgen"
	"github.com/million-dollar-projects/mumskids-sub000/internal/rewards"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screens/quiz"
	"github.com/million-dollar-projects/mumskids-sub000/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play <practice-id>",
	Short: "Start a practice session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		if !plain {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			p, err := loadPractice(cmd, st, args[0])
			st.Close()
			if err != nil {
				return err
			}
			return runApp(cmd, p)
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

		p, err := loadPractice(cmd, st, args[0])
		if err != nil {
			return err
		}
		return playPlain(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), p, newEnv(cfg, st), problemgen.NewRandom(), time.Now)
	},
}

func init() {
	playCmd.Flags().Bool("plain", false, "Ask questions line by line on stdin/stdout instead of the full-screen UI")
}

// playPlain runs one session as a line-oriented conversation.
func playPlain(ctx context.Context, in io.Reader, out io.Writer, p *practice.Practice, env quiz.Env, gen *problemgen.Generator, now func() time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if env.Rewards == nil {
		env.Rewards = rewards.NewService(nil, env.Events)
	}

	state := session.NewSessionState(p, gen, uuid.NewString(), now())
	recorder := session.NewRecorder(env.Events)
	if err := recorder.Start(ctx, state); err != nil {
		slog.Warn("play: record start", "session", state.SessionID, "err", err)
	}

	fmt.Fprintf(out, "%s\n%s\n", p.Title, p.Summary())
	if p.HasRewards() {
		fmt.Fprintf(out, "🎁 %s\n", p.EffectiveCondition().Describe())
	}
	fmt.Fprintln(out)

	lines := bufio.NewScanner(in)
	for !session.ShouldEnd(state, now()) {
		q := session.Next(state, now())
		if q == nil {
			break
		}
		fmt.Fprintf(out, "Q%d. %s\n", q.Index, q.Prompt())
		if q.HasChoices() {
			vals := make([]string, len(q.Choices))
			for i, c := range q.Choices {
				vals[i] = strconv.Itoa(c)
			}
			fmt.Fprintf(out, "  Choices: %s  (type the answer)\n", strings.Join(vals, "  "))
		}

		rec, ok := readAnswer(lines, out, state, now)
		if !ok {
			break
		}
		if rec.Correct {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "Not quite. %s = %d\n", q.Text(), q.Answer)
		}
		if err := recorder.Answer(ctx, state, rec); err != nil {
			slog.Warn("play: record answer", "session", state.SessionID, "err", err)
		}
		session.Tick(state, now())
		if state.TimeExpired {
			fmt.Fprintln(out, "Time's up!")
		}
	}

	session.End(state, now())
	outcome, err := env.Rewards.Conclude(ctx, state.SessionID, p, session.Result(state))
	if err != nil {
		slog.Warn("play: conclude", "session", state.SessionID, "err", err)
	}
	if err := recorder.End(ctx, state, outcome.Eligible); err != nil {
		slog.Warn("play: record end", "session", state.SessionID, "err", err)
	}

	sum := session.BuildSummary(state)
	fmt.Fprintf(out, "\n%s\n%d of %d correct in %s\n",
		rewards.StarLine(sum.Stars), sum.TotalCorrect, sum.TotalAnswered, sum.Duration.Round(time.Second))

	switch {
	case !p.HasRewards():
	case outcome.Pending:
		return claimPlain(ctx, lines, out, env.Rewards, state.SessionID, p, outcome)
	case outcome.Reward != nil:
		fmt.Fprintf(out, "You unlocked a reward: %s\n", outcome.Reward.Label())
	default:
		fmt.Fprintf(out, "No reward this time. Next time: %s\n", outcome.Condition.Describe())
	}
	return nil
}

// readAnswer prompts until a non-blank line arrives. It reports false at
// end of input.
func readAnswer(lines *bufio.Scanner, out io.Writer, state *session.SessionState, now func() time.Time) (*session.AnswerRecord, bool) {
	for {
		fmt.Fprint(out, "> ")
		if !lines.Scan() {
			fmt.Fprintln(out)
			return nil, false
		}
		if rec := session.HandleAnswer(state, lines.Text(), now()); rec != nil {
			return rec, true
		}
	}
}

func claimPlain(ctx context.Context, lines *bufio.Scanner, out io.Writer, svc *rewards.Service, sessionID string, p *practice.Practice, outcome rewards.Outcome) error {
	choices := outcome.Choices
	fmt.Fprintln(out, "You unlocked a reward! Pick one:")
	for i, r := range choices {
		fmt.Fprintf(out, "  %d) %s\n", i+1, r.Label())
	}
	for {
		fmt.Fprint(out, "> ")
		if !lines.Scan() {
			return errors.New("no reward picked")
		}
		n, err := strconv.Atoi(strings.TrimSpace(lines.Text()))
		if err != nil || n < 1 || n > len(choices) {
			fmt.Fprintf(out, "Type a number from 1 to %d.\n", len(choices))
			continue
		}
		reward, err := svc.Claim(ctx, sessionID, p, outcome, choices[n-1].ID)
		if err != nil {
			return fmt.Errorf("claim reward: %w", err)
		}
		fmt.Fprintf(out, "Enjoy: %s\n", reward.Label())
		return nil
	}
}
