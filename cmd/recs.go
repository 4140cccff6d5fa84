package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/singme/internal/shared"
	"github.com/urfave/cli/v3"
)

// RecsAdd creates a recommendation.
func (r *Runner) RecsAdd(ctx context.Context, cmd *cli.Command) error {
	name, link := cmd.StringArg("name"), cmd.StringArg("link")
	if name == "" || link == "" {
		return fmt.Errorf("%w: usage: recs add <name> <link>", shared.ErrMissingArgument)
	}

	rec, err := r.api.Create(ctx, name, link)
	if err != nil {
		return err
	}
	r.logger.Debug("recommendation created", "id", rec.ID)
	return r.writeRecommendation(cmd, rec)
}

// RecsList prints the most recent recommendations.
func (r *Runner) RecsList(ctx context.Context, cmd *cli.Command) error {
	recs, err := r.api.Recent(ctx)
	if err != nil {
		return err
	}
	return r.writeRecommendations(cmd, "Recent Recommendations", recs)
}

// RecsTop prints the highest scored recommendations.
func (r *Runner) RecsTop(ctx context.Context, cmd *cli.Command) error {
	amount, err := parseCount("amount", cmd.StringArg("amount"))
	if err != nil {
		return err
	}

	recs, err := r.api.Top(ctx, amount)
	if err != nil {
		return err
	}
	return r.writeRecommendations(cmd, fmt.Sprintf("Top %d Recommendations", amount), recs)
}

// RecsRandom prints one weighted random pick.
func (r *Runner) RecsRandom(ctx context.Context, cmd *cli.Command) error {
	rec, err := r.api.Random(ctx)
	if err != nil {
		return err
	}
	return r.writeRecommendation(cmd, rec)
}

// RecsGet prints one recommendation by id.
func (r *Runner) RecsGet(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	rec, err := r.api.Get(ctx, id)
	if err != nil {
		return err
	}
	return r.writeRecommendation(cmd, rec)
}

// RecsUpvote adds one point to a recommendation.
func (r *Runner) RecsUpvote(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	res, err := r.api.Upvote(ctx, id)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(res, cmd.Bool("pretty"))
	}
	return r.writeRecommendation(cmd, &res.Recommendation)
}

// RecsDownvote removes one point from a recommendation and reports when it was deleted.
func (r *Runner) RecsDownvote(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	res, err := r.api.Downvote(ctx, id)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(res, cmd.Bool("pretty"))
	}
	if res.Removed {
		return r.writePlain("✗ %q reached %+d and was removed\n", res.Name, res.Score)
	}
	return r.writeRecommendation(cmd, &res.Recommendation)
}

// RecsOpen opens a recommendation's link with the system browser.
func (r *Runner) RecsOpen(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	rec, err := r.api.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := openBrowser(rec.Link); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return r.writePlain("Opening %s\n", rec.Link)
}

// ScenarioCreate seeds recommendations through the scenario route.
func (r *Runner) ScenarioCreate(ctx context.Context, cmd *cli.Command) error {
	amount, err := parseCount("amount", cmd.StringArg("amount"))
	if err != nil {
		return err
	}

	var score *int
	if cmd.IsSet("score") {
		s := cmd.Int("score")
		score = &s
	}

	recs, err := r.api.CreateScenario(ctx, amount, score)
	if err != nil {
		return err
	}
	return r.writeRecommendations(cmd, fmt.Sprintf("Created %d Recommendations", len(recs)), recs)
}

// ScenarioReset deletes every recommendation.
func (r *Runner) ScenarioReset(ctx context.Context, cmd *cli.Command) error {
	if err := r.api.Reset(ctx); err != nil {
		return err
	}
	return r.writePlain("✓ All recommendations removed\n")
}

var openBrowser = shared.OpenBrowser

func parseID(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer, got %q", shared.ErrInvalidArgument, s)
	}
	return id, nil
}

func parseCount(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %q", shared.ErrInvalidArgument, name, s)
	}
	return n, nil
}
