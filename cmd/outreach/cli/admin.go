package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/xgirma/outreach-admin/internal/model"
	"github.com/xgirma/outreach-admin/internal/password"
	"github.com/xgirma/outreach-admin/internal/store"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
		Long:  "Create and list admin accounts directly in the credential store, without going through the HTTP API.",
	}

	cmd.AddCommand(newAdminCreateCmd())
	cmd.AddCommand(newAdminListCmd())

	return cmd
}

// ---------- admin create ----------

func newAdminCreateCmd() *cobra.Command {
	var (
		username  string
		plaintext string
		super     bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		Example: `  outreach admin create --username root --super   # bootstrap the super-admin
  outreach admin create --username editor         # prompts for password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminCreate(username, plaintext, super)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Admin username (required)")
	cmd.Flags().StringVar(&plaintext, "password", "", "Admin password (prompted if omitted)")
	cmd.Flags().BoolVar(&super, "super", false, "Create the super-admin instead of a subordinate admin")
	cmd.MarkFlagRequired("username")

	return cmd
}

func runAdminCreate(username, plaintext string, super bool) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}

	if plaintext == "" {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()
		plaintext = string(pwBytes)

		fmt.Print("Confirm password: ")
		confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		fmt.Println()

		if plaintext != string(confirmBytes) {
			return fmt.Errorf("passwords do not match")
		}
	}

	if len(plaintext) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if verdict := password.Check(plaintext); !verdict.Strong {
		return fmt.Errorf("weak password: %s", verdict.Message())
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	role := model.RoleAdmin
	if super {
		role = model.RoleSuperAdmin
		exists, err := st.HasSuperAdmin(ctx)
		if err != nil {
			return fmt.Errorf("check super-admin: %w", err)
		}
		if exists {
			return fmt.Errorf("a super-admin already exists")
		}
	}

	cost := viper.GetInt("auth.bcrypt_cost")
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin := &model.Admin{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := st.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return fmt.Errorf("admin %q already exists", username)
		}
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Printf("Created %s %q (id %d)\n", admin.Role, username, admin.ID)
	return nil
}

// ---------- admin list ----------

func newAdminListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all admin accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminList(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runAdminList(jsonOutput bool) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	defer st.Close()

	admins, err := st.ListAdmins(context.Background())
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(admins)
	}

	if len(admins) == 0 {
		fmt.Println("No admin accounts found. Use 'outreach admin create' to create one.")
		return nil
	}

	fmt.Printf("%-6s %-24s %-12s %-20s\n", "ID", "USERNAME", "ROLE", "CREATED")
	fmt.Printf("%-6s %-24s %-12s %-20s\n", "--", "--------", "----", "-------")
	for _, a := range admins {
		fmt.Printf("%-6d %-24s %-12s %-20s\n", a.ID, a.Username, a.Role, a.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}
