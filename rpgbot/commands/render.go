package commands

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"github.com/ellavondegurechaff/gorpg/internal/domain/characters"
	"github.com/ellavondegurechaff/gorpg/rpgbot/config"
	"github.com/ellavondegurechaff/gorpg/rpgbot/utils"
)

const playCommands = "/profile - view your profile\n" +
	"/battle - start a battle (coming soon)\n" +
	"/help - list all commands"

var classColors = map[characters.Class]int{
	characters.ClassWarrior: config.WarriorColor,
	characters.ClassArcher:  config.ArcherColor,
	characters.ClassMage:    config.MageColor,
}

func classColor(c characters.Class) int {
	if color, ok := classColors[c]; ok {
		return color
	}
	return config.EmbedDefaultColor
}

// ClassCustomID is the component id of the button that selects c. Only owner may press it.
func ClassCustomID(owner snowflake.ID, c characters.Class) string {
	return "/class/" + owner.String() + "/" + string(c)
}

// WelcomeBackMessage answers /start for a registered user. It never carries class buttons.
func WelcomeBackMessage(username string) discord.MessageCreate {
	embed := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("🎮 Welcome back, %s!", username)).
		SetDescription("You are already registered. Use these commands to play:\n\n" + playCommands).
		SetColor(config.InfoColor).
		Build()

	return discord.MessageCreate{Embeds: []discord.Embed{embed}}
}

// ClassSelectionMessage answers /start for an unregistered user with the catalog and one button per class.
func ClassSelectionMessage(owner snowflake.ID) discord.MessageCreate {
	var description strings.Builder
	description.WriteString("Welcome, adventurer! Your path is yours to choose.\n\n")
	description.WriteString("📜 **CHARACTER CLASSES**\n\n")
	for _, info := range characters.Classes() {
		description.WriteString(classSummary(info))
		description.WriteString("\n")
	}
	description.WriteString("⚡ **Pick a class and begin your adventure!**")

	embed := discord.NewEmbedBuilder().
		SetTitle("⚔️ WELCOME TO THE RPG! ⚔️").
		SetDescription(description.String()).
		SetColor(config.EmbedDefaultColor).
		Build()

	return discord.MessageCreate{
		Embeds:     []discord.Embed{embed},
		Components: classButtons(owner),
	}
}

func classSummary(info characters.ClassInfo) string {
	return fmt.Sprintf("%s **%s**\n"+
		"├ HP: %s (%d)\n"+
		"├ Attack: %s (%d)\n"+
		"├ Defense: %s (%d)\n"+
		"└ Trait: %s\n",
		info.Emoji, strings.ToUpper(info.Name),
		strings.Repeat("❤️", info.HPTier), info.Stats.HP,
		strings.Repeat("⚔️", info.AttackTier), info.Stats.Attack,
		strings.Repeat("🛡", info.DefenseTier), info.Stats.Defense,
		info.Trait,
	)
}

// classButtons lays the catalog out two buttons per row.
func classButtons(owner snowflake.ID) []discord.ContainerComponent {
	classes := characters.Classes()
	rows := make([]discord.ContainerComponent, 0, (len(classes)+1)/2)
	for i := 0; i < len(classes); i += 2 {
		buttons := []discord.InteractiveComponent{classButton(owner, classes[i])}
		if i+1 < len(classes) {
			buttons = append(buttons, classButton(owner, classes[i+1]))
		}
		rows = append(rows, discord.NewActionRow(buttons...))
	}
	return rows
}

func classButton(owner snowflake.ID, info characters.ClassInfo) discord.ButtonComponent {
	return discord.NewPrimaryButton(info.Label(), ClassCustomID(owner, info.Class))
}

// RegistrationCompleteUpdate replaces the welcome message once a class was picked and drops its buttons.
func RegistrationCompleteUpdate(c *characters.Character) discord.MessageUpdate {
	embed := discord.NewEmbedBuilder().
		SetTitle("✅ REGISTRATION COMPLETE!").
		SetDescription(fmt.Sprintf("You chose the class: %s\n\n🎮 Use these commands:\n%s", c.Class.Label(), playCommands)).
		SetColor(config.SuccessColor).
		Build()

	return discord.MessageUpdate{
		Embeds:     &[]discord.Embed{embed},
		Components: &[]discord.ContainerComponent{},
	}
}

// NotYourSelectionMessage answers a class button pressed by someone other than the /start invoker.
func NotYourSelectionMessage() discord.MessageCreate {
	return utils.ErrorMessage(utils.UserError, "Only the person who used /start can pick a class here. Use /start yourself to choose your own.")
}

func AlreadyRegisteredMessage(c *characters.Character) discord.MessageCreate {
	return utils.ErrorMessage(utils.BusinessLogicError,
		fmt.Sprintf("You are already registered as %s. Use /profile to see your character.", c.Class.Label()))
}

func NotRegisteredMessage() discord.MessageCreate {
	return utils.ErrorMessage(utils.UserError, "You are not registered! Use /start")
}

func UnknownClassMessage() discord.MessageCreate {
	return utils.ErrorMessage(utils.UserError, "That class does not exist. Use /start to pick one of the listed classes.")
}

func ProfileEmbed(c *characters.Character) discord.Embed {
	info := c.Class.Info()
	return discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("%s YOUR PROFILE", info.Emoji)).
		SetDescription(fmt.Sprintf("👤 Name: %s\n"+
			"⭐ Level: %d\n"+
			"❤️ HP: %d/%d\n"+
			"⚔️ Attack: %d\n"+
			"🛡 Defense: %d\n"+
			"💰 Gold: %d\n"+
			"✨ Exp: %d/%d",
			c.Username, c.Level, c.HP, c.MaxHP, c.Attack, c.Defense, c.Gold, c.Exp, characters.ExpPerLevel)).
		SetColor(classColor(c.Class)).
		SetFooter(info.Name, "").
		SetTimestamp(c.CreatedAt).
		Build()
}

func HelpEmbed() discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle("📖 COMMANDS").
		SetDescription("/start - start the game\n" +
			"/profile - your profile\n" +
			"/classes - browse the character classes\n" +
			"/battle - start a battle (coming soon)\n" +
			"/help - this help").
		SetColor(config.InfoColor).
		Build()
}

func fillClassEmbed(embed *discord.EmbedBuilder, info characters.ClassInfo) {
	embed.
		SetTitle(info.Label()).
		SetDescription(info.Trait).
		SetColor(classColor(info.Class)).
		AddField("❤️ HP", fmt.Sprintf("%s %d", strings.Repeat("❤️", info.HPTier), info.Stats.HP), true).
		AddField("⚔️ Attack", fmt.Sprintf("%s %d", strings.Repeat("⚔️", info.AttackTier), info.Stats.Attack), true).
		AddField("🛡 Defense", fmt.Sprintf("%s %d", strings.Repeat("🛡", info.DefenseTier), info.Stats.Defense), true)
}

func ClassEmbed(info characters.ClassInfo) discord.Embed {
	embed := discord.NewEmbedBuilder()
	fillClassEmbed(embed, info)
	return embed.Build()
}
