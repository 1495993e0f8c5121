// Package info implements the unauthenticated read-only commands: whois and
// serverinfo.
package info

import (
	"fmt"
	"strings"

	"server-warden/internal/command"
	"server-warden/internal/discord"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"
)

type WhoisCommand struct{}

func (c *WhoisCommand) Name() string        { return "whois" }
func (c *WhoisCommand) Description() string { return "Displays detailed information about a member." }

func (c *WhoisCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Member to inspect (defaults to you)",
				Required:    false,
			},
		},
	}
}

func (c *WhoisCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}
	s, i := slash.Session, slash.Event

	user, member := resolveSubject(i)
	if user == nil {
		return discord.RespondEphemeral(s, i, "Could not resolve the member.")
	}

	name := user.Username
	if user.GlobalName != "" {
		name = user.GlobalName
	}
	if member != nil && member.Nick != "" {
		name = member.Nick
	}

	emb := embed.NewEmbed().
		SetColor(discord.EmbedColor).
		SetTitle("👤 User Info: " + name).
		SetThumbnail(user.AvatarURL(""))

	emb = emb.AddField("ID", user.ID)
	if created, err := discordgo.SnowflakeTimestamp(user.ID); err == nil {
		emb = emb.AddField("Account Created", fmt.Sprintf("<t:%d:R>", created.Unix()))
	}
	if member != nil && !member.JoinedAt.IsZero() {
		emb = emb.AddField("Joined Server", fmt.Sprintf("<t:%d:R>", member.JoinedAt.Unix()))
	}

	roles := "No extra roles"
	count := 0
	if member != nil && len(member.Roles) > 0 {
		mentions := make([]string, 0, len(member.Roles))
		for _, id := range member.Roles {
			mentions = append(mentions, "<@&"+id+">")
		}
		roles = strings.Join(mentions, ", ")
		count = len(mentions)
	}
	emb = emb.AddField(fmt.Sprintf("Roles (%d)", count), roles)

	if requester := i.Member; requester != nil && requester.User != nil {
		emb = emb.SetFooter("Requested by "+requester.User.Username, requester.User.AvatarURL(""))
	}

	return discord.RespondEmbed(s, i, emb.MessageEmbed)
}

// resolveSubject picks the member option when given, otherwise the invoker.
func resolveSubject(i *discordgo.InteractionCreate) (*discordgo.User, *discordgo.Member) {
	data := i.ApplicationCommandData()
	for _, opt := range data.Options {
		if opt.Type != discordgo.ApplicationCommandOptionUser || data.Resolved == nil {
			continue
		}
		id, ok := opt.Value.(string)
		if !ok {
			continue
		}
		return data.Resolved.Users[id], data.Resolved.Members[id]
	}
	if i.Member != nil {
		return i.Member.User, i.Member
	}
	return i.User, nil
}
