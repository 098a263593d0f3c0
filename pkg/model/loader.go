package model

import (
	"context"
	"fmt"
	"time"

	"github.com/byxorna/roster/pkg/config"
	"github.com/byxorna/roster/pkg/db"
	"github.com/byxorna/roster/pkg/logger"
	"github.com/byxorna/roster/pkg/query"
	"github.com/byxorna/roster/pkg/store"
	"github.com/byxorna/roster/pkg/types/v1"
	"github.com/byxorna/roster/pkg/ui"
	"github.com/charmbracelet/bubbles/spinner"
)

// New builds the top level model. Users are not fetched until the program
// starts and Init runs.
func New(ctx context.Context, cfg *config.Config, backend db.Backend, log logger.Logger) (Model, error) {
	if cfg == nil {
		c := config.Default
		cfg = &c
	}
	if err := cfg.Validate(); err != nil {
		return Model{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if log == nil {
		log = logger.Discard()
	}

	var rules []v1.SortRule
	for _, column := range cfg.Sort {
		var err error
		if rules, err = query.ToggleColumnSort(rules, column); err != nil {
			return Model{}, fmt.Errorf("unable to apply sort %q: %w", column, err)
		}
	}
	st := store.New(query.New(cfg.Language()))
	if err := st.SetRules(rules); err != nil {
		return Model{}, err
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = ui.FuchsiaFg

	common := commonModel{now: time.Now}
	keys := DefaultKeyMap()

	m := Model{
		ctx:     ctx,
		backend: backend,
		log:     log,
		store:   st,

		common:  &common,
		state:   stateShowTable,
		keys:    keys,
		spinner: sp,

		table: newTableModel(&common, keys, st, cfg.Debounce),
		pager: newPagerModel(&common, cfg.GlamourStyle),
	}

	log.Debug("model initialized", "backend", backend.StoragePath(), "rules", len(st.Rules()))
	return m, nil
}
