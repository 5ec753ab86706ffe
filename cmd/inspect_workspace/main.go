package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"re-ad-be/internal/config"
	"re-ad-be/internal/repository/contract"
	"re-ad-be/internal/repository/implementation"
	"re-ad-be/internal/repository/specification"
	"re-ad-be/pkg/database"
	"re-ad-be/pkg/events"
	pktNats "re-ad-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config

	listLimit   int
	listDeleted bool
	tailSubject string
	tailDurable string

	rootCmd = &cobra.Command{
		Use:   "inspect_workspace",
		Short: "Inspect saved re:ad workspaces and the live annotation event stream",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
		},
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List saved workspaces, most recently saved first",
		RunE:  runList,
	}

	showCmd = &cobra.Command{
		Use:   "show [user-id]",
		Short: "Print the reads, highlights and graph of one user's saved workspace",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	tailCmd = &cobra.Command{
		Use:   "tail",
		Short: "Follow annotation events published to NATS",
		RunE:  runTail,
	}
)

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "maximum number of workspaces to list")
	listCmd.Flags().BoolVar(&listDeleted, "deleted", false, "include workspaces whose save was deleted")
	tailCmd.Flags().StringVar(&tailSubject, "subject", pktNats.SubjectPrefix+".>", "subject filter")
	tailCmd.Flags().StringVar(&tailDurable, "durable", "", "durable consumer name (empty follows new events only)")

	rootCmd.AddCommand(listCmd, showCmd, tailCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openRepository() (contract.WorkspaceRepository, error) {
	db, err := database.Open(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return implementation.NewWorkspaceRepository(db), nil
}

func runList(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	var scope []specification.Specification
	if listDeleted {
		scope = append(scope, specification.IncludeDeleted{})
	}

	ctx := cmd.Context()
	total, err := repo.Count(ctx, scope...)
	if err != nil {
		return err
	}
	workspaces, err := repo.FindAll(ctx, append(scope,
		specification.WithGraph{},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: listLimit},
	)...)
	if err != nil {
		return err
	}

	color.Cyan("%d saved workspace(s)\n", total)
	for _, ws := range workspaces {
		printSummaryLine(cmd.OutOrStdout(), ws)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	userID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", args[0], err)
	}

	repo, err := openRepository()
	if err != nil {
		return err
	}

	ws, err := repo.FindOne(cmd.Context(),
		specification.WorkspaceOwnedByUser{UserID: userID},
		specification.WithGraph{},
	)
	if err != nil {
		return err
	}
	if ws == nil {
		color.Yellow("No saved workspace for user %s", userID)
		return nil
	}

	printWorkspace(cmd.OutOrStdout(), ws)
	return nil
}

func runTail(cmd *cobra.Command, args []string) error {
	if cfg.App.NatsURL == "" {
		return fmt.Errorf("NATS_URL is not set")
	}

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		return err
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	color.Cyan("Following %s (Ctrl+C to stop)", tailSubject)
	out := cmd.OutOrStdout()
	return sub.Subscribe(ctx, tailSubject, tailDurable, func(_ context.Context, event events.Event) error {
		printEvent(out, event)
		return nil
	})
}
