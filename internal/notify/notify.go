// Package notify posts a short run summary to Slack and Discord webhooks.
package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/slack-go/slack"
	"github.com/zulandar/foreman/internal/models"
)

// Summary formats the run digest: the most expensive task, then one line per
// team. byCost must be ordered by TotalCost, highest first.
func Summary(byCost []models.TaskRecord, teams []models.TeamSummary) string {
	var b strings.Builder
	total := 0
	for _, t := range byCost {
		total += t.TotalCost
	}
	fmt.Fprintf(&b, "Foreman run: %d tasks, total cost $%d\n", len(byCost), total)
	if len(byCost) > 0 {
		fmt.Fprintf(&b, "Most expensive: %s ($%d)\n", byCost[0].TaskName, byCost[0].TotalCost)
	}
	for _, t := range teams {
		fmt.Fprintf(&b, "• %s: %d labor hours, $%d\n", t.AssignedTeam, t.LaborHours, t.TotalCost)
	}
	return b.String()
}

// Slack posts text to an incoming webhook. An empty URL is a no-op.
func Slack(ctx context.Context, webhookURL, text string) error {
	if webhookURL == "" {
		return nil
	}
	if err := slack.PostWebhookContext(ctx, webhookURL, &slack.WebhookMessage{Text: text}); err != nil {
		return fmt.Errorf("notify: slack webhook: %w", err)
	}
	return nil
}

// Discord posts text to a Discord webhook URL of the form
// https://discord.com/api/webhooks/{id}/{token}. An empty URL is a no-op.
func Discord(ctx context.Context, webhookURL, text string) error {
	if webhookURL == "" {
		return nil
	}
	id, token, err := discordWebhook(webhookURL)
	if err != nil {
		return err
	}
	s, err := discordgo.New("")
	if err != nil {
		return fmt.Errorf("notify: discord session: %w", err)
	}
	params := &discordgo.WebhookParams{Content: text}
	if _, err := s.WebhookExecute(id, token, false, params, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("notify: discord webhook: %w", err)
	}
	return nil
}

// discordWebhook extracts the webhook ID and token from its URL.
func discordWebhook(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("notify: discord webhook url: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == "webhooks" && i+2 < len(parts) && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("notify: discord webhook url %q: want .../webhooks/{id}/{token}", raw)
}
