package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/good-yellow-bee/taskboard/internal/tracker"
)

var (
	userUsername string
	userEmail    string
	userAdmin    bool
)

// userCmd represents the user command group
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "User management commands",
	Long: `Commands for managing taskboard accounts.

Examples:
  # List all users
  taskctl user list

  # Create an administrator
  taskctl user create --username root --email root@example.com --admin`,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	Long: `List all users ordered by id. Password digests are never displayed.

Example:
  taskctl user list -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		userList, err := s.tracker.ListUsers(ctx)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if done, err := printJSON(w, userList); done {
			return err
		}
		if len(userList) == 0 {
			fmt.Fprintln(w, "No users found.")
			return nil
		}

		fmt.Fprintf(w, "\n%-6s  %-20s  %-30s  %-5s  %s\n", "ID", "USERNAME", "EMAIL", "ADMIN", "CREATED")
		printRule(w, 85)
		for _, u := range userList {
			fmt.Fprintf(w, "%-6d  %-20s  %-30s  %-5t  %s\n",
				u.ID, u.Username, u.Email, u.IsAdmin, formatTime(u.CreatedAt))
		}
		fmt.Fprintf(w, "\nTotal: %d user(s)\n", len(userList))
		return nil
	},
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	Long: `Create a new account. The password is prompted interactively so it
does not end up in shell history. Piped input is read one line per prompt.

Example:
  taskctl user create --username john --email john@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username := strings.TrimSpace(userUsername)
		email := strings.TrimSpace(userEmail)
		if username == "" {
			return fmt.Errorf("--username is required")
		}
		if email == "" {
			return fmt.Errorf("--email is required")
		}

		prompt := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		password, err := prompt.password("Enter password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if password == "" {
			return fmt.Errorf("password must not be empty")
		}
		confirm, err := prompt.password("Confirm password: ")
		if err != nil {
			return fmt.Errorf("read password confirmation: %w", err)
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		user, err := s.tracker.Register(ctx, tracker.RegisterInput{
			Username: username,
			Email:    email,
			Password: password,
			IsAdmin:  userAdmin,
		})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "\nUser created successfully:\n")
		fmt.Fprintf(w, "  ID:       %d\n", user.ID)
		fmt.Fprintf(w, "  Username: %s\n", user.Username)
		fmt.Fprintf(w, "  Email:    %s\n", user.Email)
		fmt.Fprintf(w, "  Admin:    %t\n", user.IsAdmin)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userCreateCmd)

	userCreateCmd.Flags().StringVar(&userUsername, "username", "", "username for the new user (required)")
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "email for the new user (required)")
	userCreateCmd.Flags().BoolVar(&userAdmin, "admin", false, "grant the admin scope")
	userCreateCmd.MarkFlagRequired("username")
	userCreateCmd.MarkFlagRequired("email")
}

// prompter reads secrets from a terminal without echo, or line by line from
// any other reader.
type prompter struct {
	in  io.Reader
	out io.Writer
	buf *bufio.Reader
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, out: out, buf: bufio.NewReader(in)}
}

func (p *prompter) password(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := p.buf.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
