package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/byxorna/roster/pkg/db"
	"github.com/byxorna/roster/pkg/query"
	"github.com/byxorna/roster/pkg/store"
	"github.com/byxorna/roster/pkg/text"
	"github.com/byxorna/roster/pkg/types/v1"
	"github.com/byxorna/roster/pkg/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	listFlags = struct {
		Search string
		Sort   []string
		JSON   bool
	}{}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Print users, optionally filtered and sorted",
		Long: `Print users, optionally filtered by name and sorted.

Each --sort toggles a column in order, so the first column given is the
dominant key and naming a column twice sorts it descending.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			backend, err := newBackend(cfg, log)
			if err != nil {
				return err
			}
			defer closeBackend(backend)

			sorts := cfg.Sort
			if cmd.Flags().Changed("sort") {
				sorts = listFlags.Sort
			}

			st, err := fetchStore(cmd.Context(), backend, query.New(cfg.Language()), sorts)
			if err != nil {
				return err
			}
			users := st.Search(listFlags.Search)
			log.Debug("listing users", "total", st.Len(), "matched", len(users), "sort", sortSummary(st.Rules()))

			if listFlags.JSON {
				return writeJSON(cmd.OutOrStdout(), users)
			}
			return writeTable(cmd.OutOrStdout(), users, listFlags.Search)
		},
	}
)

func init() {
	listCmd.Flags().StringVarP(&listFlags.Search, "search", "s", "", "only show users whose name contains this text")
	listCmd.Flags().StringSliceVar(&listFlags.Sort, "sort", nil, "toggle sort on a column: name, email, city or company (repeatable)")
	listCmd.Flags().BoolVar(&listFlags.JSON, "json", false, "print JSON instead of a table")
	root.AddCommand(listCmd)
}

// fetchStore loads every user into a new store and applies sorts in order.
func fetchStore(ctx context.Context, backend db.Backend, engine query.Engine, sorts []string) (*store.Store, error) {
	st := store.New(engine)
	for _, column := range sorts {
		if err := st.ToggleSort(column); err != nil {
			return nil, err
		}
	}

	ticket := st.BeginFetch()
	users, err := backend.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch users: %w", err)
	}
	st.Replace(ticket, users)
	return st, nil
}

func sortSummary(rules []v1.SortRule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.String()
	}
	return out
}

func writeJSON(w io.Writer, users []v1.User) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(users)
}

func writeTable(w io.Writer, users []v1.User, search string) error {
	out := termenv.NewOutput(w)
	plain := out.String()

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			strconv.Itoa(int(u.ID)),
			text.StyleFilteredText(u.Name, search, plain),
			u.Email,
			u.Address.String(),
			text.ColoredLabel(u.Company),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(ui.GrayFg).
		Headers("ID", "NAME", "EMAIL", "ADDRESS", "COMPANY").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return ui.HeaderStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
