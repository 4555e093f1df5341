package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/domain/config"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectNetwork asks the user to pick one of networks
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, networks []*domain.Network, prompt string) (*domain.Network, error) {
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(networks) == 0 {
		return nil, fmt.Errorf("no networks provided for selection")
	}

	if len(networks) == 1 {
		return networks[0], nil
	}

	options := formatNetworkOptions(networks)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Type to filter, arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(searchKeys(networks)),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return networks[index], nil
}

// formatNetworkOptions creates display strings such as "optimism (10) [L2]"
func formatNetworkOptions(networks []*domain.Network) []string {
	options := make([]string, len(networks))
	for i, network := range networks {
		name := color.New(color.FgWhite, color.Bold).Sprint(network.Name)
		chain := color.New(color.FgBlue).Sprintf("(%d)", network.ChainID)
		if network.L2 {
			options[i] = fmt.Sprintf("%s %s %s", name, chain, color.New(color.FgYellow).Sprint("[L2]"))
		} else {
			options[i] = fmt.Sprintf("%s %s", name, chain)
		}
	}
	return options
}

// searchKeys are the uncoloured strings the search runs against
func searchKeys(networks []*domain.Network) []string {
	keys := make([]string, len(networks))
	for i, network := range networks {
		keys[i] = fmt.Sprintf("%s %d", network.Name, network.ChainID)
	}
	return keys
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.NetworkSelector = (*SelectorAdapter)(nil)
