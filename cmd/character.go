package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/disgoorg/snowflake/v2"
	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/gorpg/backend/models"
	"github.com/ellavondegurechaff/gorpg/internal/domain/characters"
	"github.com/ellavondegurechaff/gorpg/rpgbot"
)

var characterCMD = &cobra.Command{
	Use:   "character <user-id>",
	Short: "print a stored character as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := snowflake.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", args[0], err)
		}

		ctx := cmd.Context()
		storage, err := rpgbot.OpenStorage(ctx, *cfg)
		if err != nil {
			return err
		}
		defer storage.Close(ctx)

		character, err := characters.NewService(storage.Characters).Profile(ctx, userID)
		if errors.Is(err, characters.ErrNotRegistered) {
			return fmt.Errorf("user %s has no character", userID)
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(models.NewCharacterResponse(character))
	},
}

func init() {
	rootCmd.AddCommand(characterCMD)
}
