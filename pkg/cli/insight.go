package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/chunpat/life-pulse-ai/pkg/cli/config"
	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
	"github.com/chunpat/life-pulse-ai/pkg/service/llm"
	"github.com/chunpat/life-pulse-ai/pkg/usecase"
	"github.com/chunpat/life-pulse-ai/pkg/utils/logging"
)

// cmdInsight resolves a period, aggregates the logs and prints an AI insight.
// Useful for poking at production data without running the server.
func cmdInsight() *cli.Command {
	var userID string
	var periodStr string
	var dateStr string
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user",
			Usage:       "User ID to inspect (required)",
			Required:    true,
			Sources:     cli.EnvVars("LIFEPULSE_USER"),
			Destination: &userID,
		},
		&cli.StringFlag{
			Name:        "period",
			Usage:       "Period type (day, week or month)",
			Value:       "day",
			Destination: &periodStr,
		},
		&cli.StringFlag{
			Name:        "date",
			Usage:       "Date within the period (YYYY-MM-DD, defaults to today)",
			Destination: &dateStr,
		},
	}

	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "insight",
		Aliases: []string{"i"},
		Usage:   "Aggregate a period and print an AI insight",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			settings, err := appCfg.Configure(c)
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			period, err := types.ParsePeriodType(periodStr)
			if err != nil {
				return goerr.Wrap(err, "invalid period")
			}

			date := time.Now().In(settings.Location)
			if dateStr != "" {
				date, err = time.ParseInLocation("2006-01-02", dateStr, settings.Location)
				if err != nil {
					return goerr.Wrap(err, "invalid date", goerr.V("date", dateStr))
				}
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}
			if llmClient == nil {
				return goerr.New("gemini-project is required for the insight command")
			}
			insightSvc, err := llm.NewInsight(llmClient)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize insight service")
			}

			uc := usecase.New(repo,
				usecase.WithInsightService(insightSvc),
				usecase.WithLocation(settings.Location),
				usecase.WithLanguage(settings.Language),
				usecase.WithCategoryLabels(settings.Labels),
			)

			user := &model.User{
				ID:     types.UserID(userID),
				Status: types.UserStatusAuthenticated,
			}

			result, err := uc.Analytics.Summary(ctx, user, period, date)
			if err != nil {
				return goerr.Wrap(err, "failed to aggregate logs")
			}

			header := color.New(color.FgCyan, color.Bold)
			dim := color.New(color.FgHiBlack)
			value := color.New(color.FgHiWhite)

			header.Fprintf(os.Stdout, "%s insight for %s\n", period, date.Format("2006-01-02"))
			dim.Fprintf(os.Stdout, "window: %s .. %s\n",
				result.Start.Format(time.RFC3339),
				result.End.Format(time.RFC3339))
			value.Fprintf(os.Stdout, "entries: %d, total: %dh %dm\n",
				result.Summary.Entries,
				result.Summary.Hours(),
				result.Summary.RemMinutes())

			for _, c := range result.Summary.Categories {
				label := c.Category.String()
				if l, ok := settings.Labels[c.Category]; ok {
					label = fmt.Sprintf("%s (%s)", label, l)
				}
				fmt.Fprintf(os.Stdout, "  %-24s %4dm\n", label, c.Minutes)
			}
			if result.Summary.TopMood != "" {
				dim.Fprintf(os.Stdout, "top mood: %s\n", result.Summary.TopMood)
			}

			insight, err := uc.Insight.Generate(ctx, user, period, date)
			if err != nil {
				return goerr.Wrap(err, "failed to generate insight")
			}

			fmt.Fprintln(os.Stdout)
			color.New(color.FgGreen).Fprintln(os.Stdout, insight.Text)

			return nil
		},
	}
}
