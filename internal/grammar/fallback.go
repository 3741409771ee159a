package grammar

// fallbackCommands are common Minecraft server commands, offered for name
// completion when the server's listing is unavailable.
var fallbackCommands = []string{
	"/help", "/ban", "/ban-ip", "/banlist", "/deop", "/difficulty", "/effect", "/enchant",
	"/gamemode", "/gamerule", "/give", "/kick", "/kill", "/list", "/me", "/op", "/pardon",
	"/pardon-ip", "/save-all", "/save-off", "/save-on", "/say", "/scoreboard", "/seed",
	"/setblock", "/setidletimeout", "/setworldspawn", "/spawnpoint", "/stop", "/summon",
	"/teleport", "/tell", "/time", "/tp", "/weather", "/whitelist", "/xp",
}

// Fallback returns a registry of well-known command names without argument
// grammar.
func Fallback() *Registry {
	commands := make([]Command, 0, len(fallbackCommands))
	for _, name := range fallbackCommands {
		commands = append(commands, Command{Name: name})
	}
	return NewRegistry(commands)
}
