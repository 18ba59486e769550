package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"interview-prep-backend/config"
	"interview-prep-backend/internal/domain"
	"interview-prep-backend/internal/repository/postgres"
	"interview-prep-backend/internal/usecase"
	"interview-prep-backend/pkg/database"
	"interview-prep-backend/pkg/leetcode"
	"interview-prep-backend/pkg/llm"
	"interview-prep-backend/pkg/logger"

	"github.com/spf13/cobra"
)

const commandTimeout = 2 * time.Minute

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prepctl",
		Short: "Operate the interview prep backend",
		Long: `prepctl applies the database schema and runs single lookups through the same
pipeline the API uses, which is handy when tuning prompts or checking credentials.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logger.Init("development")
			}
			return nil
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "Log pipeline steps to stdout")

	root.AddCommand(newMigrateCmd(), newQuestionCmd(), newRecommendCmd())
	return root
}

// --- migrate ---

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the profiles table if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := postgres.Migrate(ctx, pool); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	}
}

// --- question ---

func newQuestionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "question [slug]",
		Short: "Look up a problem through the LeetCode proxy",
		Long: `Look up a problem through the LeetCode proxy.

Examples:
  prepctl question
  prepctl question lru-cache`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			slug := ""
			if len(args) == 1 {
				slug = args[0]
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			questionUC := usecase.NewQuestionUsecase(leetcode.NewClient(cfg.LeetCodeGraphQLURL))
			question, err := questionUC.GetQuestion(ctx, slug)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), question)
		},
	}
}

// --- recommend ---

func newRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Generate recommendations for a stored profile",
		Long: `Generate recommendations for a stored profile.

Examples:
  prepctl recommend --user 6f1c0c8e-3b8e-4a57-9d43-2f0a1c2b9e11
  prepctl recommend --user 6f1c0c8e-3b8e-4a57-9d43-2f0a1c2b9e11 --mode tag`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			mode, _ := cmd.Flags().GetString("mode")

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
			if err != nil {
				return err
			}
			defer pool.Close()

			completer, err := llm.New(ctx, llm.Config{
				Provider: llm.Provider(cfg.LLMProvider),
				OpenAI:   llm.OpenAIConfig{APIKey: cfg.GroqAPIKey, BaseURL: cfg.GroqBaseURL, Model: cfg.GroqModel},
				Gemini:   llm.GeminiConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel},
			})
			if err != nil {
				return err
			}

			recommendationUC := usecase.NewRecommendationUsecase(postgres.NewProfileRepository(pool), completer)
			result, err := recommendationUC.Generate(ctx, userID, domain.RecommendationMode(mode))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().String("user", "", "Profile id (required)")
	cmd.Flags().String("mode", string(domain.ModeQuestion), "question or tag")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
