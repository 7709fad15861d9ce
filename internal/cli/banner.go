package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
███╗   ██╗███████╗███████╗████████╗ ██████╗ ███████╗███╗   ██╗
████╗  ██║██╔════╝██╔════╝╚══██╔══╝██╔════╝ ██╔════╝████╗  ██║
██╔██╗ ██║█████╗  ███████╗   ██║   ██║  ███╗█████╗  ██╔██╗ ██║
██║╚██╗██║██╔══╝  ╚════██║   ██║   ██║   ██║██╔══╝  ██║╚██╗██║
██║ ╚████║███████╗███████║   ██║   ╚██████╔╝███████╗██║ ╚████║
╚═╝  ╚═══╝╚══════╝╚══════╝   ╚═╝    ╚═════╝ ╚══════╝╚═╝  ╚═══╝`

var (
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	taglineStyle = lipgloss.NewStyle().Faint(true)
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// printBanner writes the nestgen logo and tagline.
func printBanner(w io.Writer) {
	fmt.Fprintln(w, bannerStyle.Render(bannerArt))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "✨ NestGen CLI: modular NestJS generator")
	fmt.Fprintln(w, taglineStyle.Render("📦 DDD • CQRS • Hexagonal • TypeORM/Prisma • Swagger/Docker"))
	fmt.Fprintln(w)
}

// usageLines is the static command summary shown by the help screen.
var usageLines = [][2]string{
	{"nestgen init", "Create a complete NestJS project"},
	{"nestgen module <name> --orm=typeorm", "Generate a module (DDD/CQRS)"},
	{"nestgen doctor", "Check the nestgen environment"},
}

// printUsage writes the banner followed by the command summary.
func printUsage(w io.Writer) {
	printBanner(w)
	fmt.Fprintln(w, "📘 Available commands:")
	for _, line := range usageLines {
		fmt.Fprintf(w, "  ▸ %s  → %s\n", commandStyle.Render(fmt.Sprintf("%-36s", line[0])), line[1])
	}
	fmt.Fprintln(w)
}
