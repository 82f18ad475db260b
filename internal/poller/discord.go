package poller

import (
	"fmt"

	"macro-news-bot/backend/internal/models"

	"github.com/bwmarrin/discordgo"
)

// ChannelFetcher resolves one Discord channel and fetches its latest message
type ChannelFetcher struct {
	session   *discordgo.Session
	channelID string
	guildID   string
}

// NewChannelFetcher opens a Discord session and resolves the channel handle
func NewChannelFetcher(token, channelID string) (*ChannelFetcher, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("open discord session: %w", err)
	}

	channel, err := session.Channel(channelID)
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("resolve channel %s: %w", channelID, err)
	}

	return &ChannelFetcher{
		session:   session,
		channelID: channel.ID,
		guildID:   channel.GuildID,
	}, nil
}

// LatestMessage fetches the single most recent message of the channel
func (f *ChannelFetcher) LatestMessage() (*models.NewsMessage, error) {
	msgs, err := f.session.ChannelMessages(f.channelID, 1, "", "", "")
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, nil
	}

	m := msgs[0]

	author := ""
	if m.Author != nil {
		author = m.Author.Username
	}

	// REST-fetched messages often omit the guild id; fall back to the
	// resolved channel's guild.
	guildID := m.GuildID
	if guildID == "" {
		guildID = f.guildID
	}

	return &models.NewsMessage{
		MessageID: m.ID,
		ChannelID: m.ChannelID,
		GuildID:   guildID,
		Author:    author,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}, nil
}

// Close shuts down the Discord session
func (f *ChannelFetcher) Close() error {
	return f.session.Close()
}
