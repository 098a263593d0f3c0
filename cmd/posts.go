package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/byxorna/roster/pkg/db"
	"github.com/byxorna/roster/pkg/model"
	"github.com/byxorna/roster/pkg/query"
	"github.com/byxorna/roster/pkg/types/v1"
	"github.com/spf13/cobra"
)

const postsWrapWidth = 80

var postsCmd = &cobra.Command{
	Use:   "posts <user id>",
	Short: "Print a user's posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", args[0], err)
		}

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

		return printPosts(cmd.Context(), cmd.OutOrStdout(), backend, query.New(cfg.Language()), v1.ID(id), cfg.GlamourStyle)
	},
}

func init() {
	root.AddCommand(postsCmd)
}

func printPosts(ctx context.Context, w io.Writer, backend db.Backend, engine query.Engine, id v1.ID, style string) error {
	st, err := fetchStore(ctx, backend, engine, nil)
	if err != nil {
		return err
	}
	u, ok := st.Get(id)
	if !ok {
		return fmt.Errorf("user %d: %w", id, db.ErrNotFound)
	}

	posts, err := backend.ListPosts(ctx, id)
	if err != nil {
		return fmt.Errorf("unable to fetch posts for user %d: %w", id, err)
	}
	if len(posts) == 0 {
		return fmt.Errorf("posts for %s: %w", u.Name, db.ErrNotFound)
	}

	out, err := model.RenderPosts(u, posts, style, postsWrapWidth)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
