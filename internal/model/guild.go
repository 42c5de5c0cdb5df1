package model

// AccessLevel is a permission tier a Discord role can be mapped to.
type AccessLevel string

const (
	AccessLevelAdmin AccessLevel = "ADMIN"
	AccessLevelStaff AccessLevel = "STAFF"
)

// Provider identifies an identity system an account can be linked from.
type Provider string

const (
	ProviderDiscord Provider = "discord"
	ProviderGitLab  Provider = "gitlab"
)

// Guild is the public summary of the Discord server.
type Guild struct {
	ID            string
	Name          string
	MemberCount   int
	PresenceCount int
}

// Member is a guild member as seen by the chat platform.
type Member struct {
	UserID   string
	Username string
	Avatar   string
	Roles    []string
}

// Thread is a Discord thread channel.
type Thread struct {
	ID         string
	Name       string
	ParentName string
	IsThread   bool
}
