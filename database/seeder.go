package database

import (
	"fmt"

	"github.com/fluentup/fluentup-be/internal/entity"
	"gorm.io/gorm"
)

// seedOption - option data before node IDs are known
type seedOption struct {
	Text        string
	Score       int
	NextNodeKey string
}

type seedNode struct {
	NodeKey string
	Content string
	Options []seedOption
}

// Demo scenario graph so a fresh install has something to play through.
var demoScenarioNodes = []seedNode{
	{
		NodeKey: entity.StartNodeKey,
		Content: "Your manager calls you in: \"Thanks for coming. I wanted to talk about your performance this year. How do you feel it went?\"",
		Options: []seedOption{
			{Text: "I'm proud of what I delivered this year, and I'd like to discuss a raise.", Score: 80, NextNodeKey: "negotiate"},
			{Text: "It went okay, I guess. Whatever you think is fair.", Score: 50, NextNodeKey: "accept"},
		},
	},
	{
		NodeKey: "negotiate",
		Content: "\"A raise? That's a big ask this year. What makes you think you've earned it?\"",
		Options: []seedOption{
			{Text: "I led our two largest client projects and grew the account revenue by fifteen percent.", Score: 90, NextNodeKey: entity.TerminalNodeKey},
			{Text: "Well, I've been here a long time, so it seems only fair.", Score: 40, NextNodeKey: entity.TerminalNodeKey},
		},
	},
	{
		NodeKey: "accept",
		Content: "\"Alright then, we'll keep things as they are and revisit next cycle. Thanks for your work this year.\"",
	},
}

// SeedScenarios - insert the demo scenario graph on an empty database
func SeedScenarios(db *gorm.DB) error {
	var count int64
	db.Model(&entity.Scenario{}).Count(&count)
	if count > 0 {
		fmt.Println("Scenarios already seeded, skipping...")
		return nil
	}

	fmt.Println("Seeding demo scenario...")

	scenario := entity.Scenario{
		Slug:       "salary-negotiation",
		Title:      "Negotiating a Raise",
		Difficulty: "medium",
		Context:    "It is your annual performance review. You want to make the case for a raise without souring the relationship with your manager.",
		Active:     true,
	}
	if err := db.Create(&scenario).Error; err != nil {
		return fmt.Errorf("failed to seed scenario: %w", err)
	}

	for _, n := range demoScenarioNodes {
		node := entity.DialogueNode{
			ScenarioID: scenario.ID,
			NodeKey:    n.NodeKey,
			Content:    n.Content,
		}
		if err := db.Create(&node).Error; err != nil {
			return fmt.Errorf("failed to seed node %s: %w", n.NodeKey, err)
		}

		for _, o := range n.Options {
			option := entity.ResponseOption{
				NodeID:      node.ID,
				Text:        o.Text,
				Score:       o.Score,
				NextNodeKey: o.NextNodeKey,
			}
			if err := db.Create(&option).Error; err != nil {
				return fmt.Errorf("failed to seed option for node %s: %w", n.NodeKey, err)
			}
		}
	}

	fmt.Printf("Successfully seeded scenario %q with %d nodes\n", scenario.Slug, len(demoScenarioNodes))
	return nil
}

// SeedGradingContent - insert a demo discussion question and report
func SeedGradingContent(db *gorm.DB) error {
	var count int64
	db.Model(&entity.Report{}).Count(&count)
	if count > 0 {
		fmt.Println("Grading content already seeded, skipping...")
		return nil
	}

	fmt.Println("Seeding demo grading content...")

	report := entity.Report{
		Title: "Remote Work Is Reshaping Cities",
		Body: "Five years after the pandemic normalized remote work, its effects on city centers are still unfolding. " +
			"Office vacancy rates in major business districts remain well above their 2019 levels, pushing landlords to convert " +
			"towers into apartments and laboratories. Meanwhile, smaller cities and suburbs have seen an influx of remote " +
			"workers, driving up housing costs but also reviving local main streets. Economists disagree about whether the " +
			"shift is permanent, yet most accept that the five-day office week is unlikely to return for knowledge workers.",
	}
	if err := db.Create(&report).Error; err != nil {
		return fmt.Errorf("failed to seed report: %w", err)
	}

	question := entity.DiscussionQuestion{
		ContentID:    report.ID,
		Prompt:       "Do you think remote work will remain common in ten years? Why or why not?",
		SampleAnswer: "I believe remote work will remain common because companies have learned that many jobs can be done effectively from home, and workers now expect that flexibility. However, hybrid schedules are more likely than fully remote ones, since teams still benefit from meeting in person.",
	}
	if err := db.Create(&question).Error; err != nil {
		return fmt.Errorf("failed to seed discussion question: %w", err)
	}

	fmt.Println("Successfully seeded demo grading content")
	return nil
}
