package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/prosecheck/internal/config"
	"github.com/blackwell-systems/prosecheck/internal/store"
)

var dictLanguage string

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Manage the user dictionary",
	Long: `Add, remove, and list words the dictionary engine should accept.
Words persist in the local database and load on service start.`,
}

var dictAddCmd = &cobra.Command{
	Use:   "add <word>...",
	Short: "Accept words as correctly spelled",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDict(func(db *store.DB) error {
			for _, w := range args {
				if err := db.AddUserWord(w, dictLanguage); err != nil {
					return err
				}
			}
			fmt.Printf("Added %d word(s).\n", len(args))
			return nil
		})
	},
}

var dictRemoveCmd = &cobra.Command{
	Use:   "remove <word>...",
	Short: "Drop words from the user dictionary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDict(func(db *store.DB) error {
			for _, w := range args {
				if err := db.RemoveUserWord(w); err != nil {
					return err
				}
			}
			fmt.Printf("Removed %d word(s).\n", len(args))
			return nil
		})
	},
}

var dictListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user dictionary words",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDict(func(db *store.DB) error {
			words, err := db.UserWords(dictLanguage)
			if err != nil {
				return err
			}
			if len(words) == 0 {
				fmt.Println("User dictionary is empty.")
				return nil
			}
			for _, w := range words {
				fmt.Println(w)
			}
			return nil
		})
	},
}

func withDict(fn func(*store.DB) error) error {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	return fn(db)
}

func init() {
	dictCmd.PersistentFlags().StringVar(&dictLanguage, "language", config.DefaultLanguage, "Dictionary language")
	dictCmd.AddCommand(dictAddCmd, dictRemoveCmd, dictListCmd)
	rootCmd.AddCommand(dictCmd)
}
