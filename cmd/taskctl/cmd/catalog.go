package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/taskboard/internal/tracker"
)

// catalogKind binds a catalog name to its tracker operations.
type catalogKind struct {
	name   string
	create func(ctx context.Context, t *tracker.Service, name string) (int64, error)
	list   func(ctx context.Context, t *tracker.Service, w io.Writer) (int, error)
}

var catalogKinds = map[string]catalogKind{
	"role": {
		name: "role",
		create: func(ctx context.Context, t *tracker.Service, name string) (int64, error) {
			r, err := t.CreateRole(ctx, name)
			if err != nil {
				return 0, err
			}
			return r.ID, nil
		},
		list: func(ctx context.Context, t *tracker.Service, w io.Writer) (int, error) {
			roles, err := t.ListRoles(ctx)
			if err != nil {
				return 0, err
			}
			if done, err := printJSON(w, roles); done {
				return -1, err
			}
			for _, r := range roles {
				fmt.Fprintf(w, "%-6d  %s\n", r.ID, r.Name)
			}
			return len(roles), nil
		},
	},
	"technology": {
		name: "technology",
		create: func(ctx context.Context, t *tracker.Service, name string) (int64, error) {
			tech, err := t.CreateTechnology(ctx, name)
			if err != nil {
				return 0, err
			}
			return tech.ID, nil
		},
		list: func(ctx context.Context, t *tracker.Service, w io.Writer) (int, error) {
			techs, err := t.ListTechnologies(ctx)
			if err != nil {
				return 0, err
			}
			if done, err := printJSON(w, techs); done {
				return -1, err
			}
			for _, tech := range techs {
				fmt.Fprintf(w, "%-6d  %s\n", tech.ID, tech.Name)
			}
			return len(techs), nil
		},
	},
	"status": {
		name: "task status",
		create: func(ctx context.Context, t *tracker.Service, name string) (int64, error) {
			st, err := t.CreateTaskStatus(ctx, name)
			if err != nil {
				return 0, err
			}
			return st.ID, nil
		},
		list: func(ctx context.Context, t *tracker.Service, w io.Writer) (int, error) {
			statuses, err := t.ListTaskStatuses(ctx)
			if err != nil {
				return 0, err
			}
			if done, err := printJSON(w, statuses); done {
				return -1, err
			}
			for _, st := range statuses {
				fmt.Fprintf(w, "%-6d  %s\n", st.ID, st.Name)
			}
			return len(statuses), nil
		},
	},
}

func lookupCatalog(kind string) (catalogKind, error) {
	k, ok := catalogKinds[strings.ToLower(kind)]
	if !ok {
		return catalogKind{}, fmt.Errorf("unknown catalog %q (want role, technology or status)", kind)
	}
	return k, nil
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage roles, technologies and task statuses",
	Long: `Commands for the lookup catalogs referenced by profiles and tasks.

Catalog kinds: role, technology, status.

Examples:
  taskctl catalog add role Developer
  taskctl catalog list status`,
}

var catalogAddCmd = &cobra.Command{
	Use:   "add <kind> <name>",
	Short: "Add a catalog entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := lookupCatalog(args[0])
		if err != nil {
			return err
		}
		name := strings.TrimSpace(args[1])
		if name == "" {
			return fmt.Errorf("name must not be empty")
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		id, err := kind.create(ctx, s.tracker, name)
		if err != nil {
			return fmt.Errorf("create %s: %w", kind.name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q with id %d\n", kind.name, name, id)
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List catalog entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := lookupCatalog(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		w := cmd.OutOrStdout()
		n, err := kind.list(ctx, s.tracker, w)
		if err != nil {
			return fmt.Errorf("list %s: %w", kind.name, err)
		}
		if n == 0 {
			fmt.Fprintf(w, "No %s entries found.\n", kind.name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogListCmd)
}
