// internal/app/commands.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/hostelworks/hostel-console/internal/dtos"
)

// ErrUsage marks a malformed command line.
var ErrUsage = errors.New("usage")

const Usage = `usage: hostel-console [--server URL] <command> [flags]

commands:
  login -u USER [-p PASSWORD]      sign in (password read from stdin when omitted)
  logout                           forget the saved session
  whoami                           show the signed-in user
  dashboard [--watch SCHEDULE]     headline numbers, optionally refreshed on a cron schedule
  rooms list
  rooms create --number N --type Single|Double|Dormitory --capacity C --price P
  members list
  members create --name N --email E --phone P --room ROOM_ID [--emergency TEXT]
  payments list
  payments create --member ID --amount A --type rent|deposit|utility|other [--description D] [--due YYYY-MM-DD]
  reports [--start YYYY-MM-DD] [--end YYYY-MM-DD]
  seed                             add sample rooms and members when none exist
`

// Run executes one console command. stdin is only read by login.
func (a *App) Run(ctx context.Context, args []string, stdin io.Reader, stderr io.Writer) error {
	if len(args) == 0 {
		return usageError("missing command")
	}
	cmd, rest := args[0], args[1:]
	c := a.Console

	switch cmd {
	case "login":
		fs := newFlagSet("login", stderr)
		username := fs.String("u", "", "username")
		password := fs.String("p", "", "password")
		if err := fs.Parse(rest); err != nil {
			return usageError(err.Error())
		}
		if *username == "" {
			return usageError("login needs -u")
		}
		if *password == "" {
			pw, err := readLine(stdin)
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			*password = pw
		}
		return c.Login(ctx, *username, *password)

	case "logout":
		return c.Logout(ctx)

	case "whoami":
		return c.WhoAmI(ctx)

	case "dashboard":
		fs := newFlagSet("dashboard", stderr)
		watch := fs.String("watch", "", "cron schedule, e.g. \"@every 30s\"")
		if err := fs.Parse(rest); err != nil {
			return usageError(err.Error())
		}
		if *watch != "" {
			return c.WatchDashboard(ctx, *watch)
		}
		return c.Dashboard(ctx)

	case "rooms":
		sub, subArgs, err := subcommand(cmd, rest)
		if err != nil {
			return err
		}
		if sub == "list" {
			return c.ListRooms(ctx)
		}
		fs := newFlagSet("rooms create", stderr)
		var form dtos.RoomForm
		fs.StringVar(&form.RoomNumber, "number", "", "room number")
		fs.StringVar(&form.RoomType, "type", "", "Single, Double or Dormitory")
		fs.StringVar(&form.Capacity, "capacity", "", "beds")
		fs.StringVar(&form.PricePerMonth, "price", "", "price per month")
		if err := fs.Parse(subArgs); err != nil {
			return usageError(err.Error())
		}
		return c.CreateRoom(ctx, form)

	case "members":
		sub, subArgs, err := subcommand(cmd, rest)
		if err != nil {
			return err
		}
		if sub == "list" {
			return c.ListMembers(ctx)
		}
		fs := newFlagSet("members create", stderr)
		var form dtos.MemberForm
		fs.StringVar(&form.Name, "name", "", "full name")
		fs.StringVar(&form.Email, "email", "", "email address")
		fs.StringVar(&form.Phone, "phone", "", "phone number")
		fs.StringVar(&form.RoomID, "room", "", "room id")
		fs.StringVar(&form.EmergencyContact, "emergency", "", "emergency contact")
		if err := fs.Parse(subArgs); err != nil {
			return usageError(err.Error())
		}
		return c.CreateMember(ctx, form)

	case "payments":
		sub, subArgs, err := subcommand(cmd, rest)
		if err != nil {
			return err
		}
		if sub == "list" {
			return c.ListPayments(ctx)
		}
		fs := newFlagSet("payments create", stderr)
		var form dtos.PaymentForm
		fs.StringVar(&form.MemberID, "member", "", "member id")
		fs.StringVar(&form.Amount, "amount", "", "amount")
		fs.StringVar(&form.PaymentType, "type", "", "rent, deposit, utility or other")
		fs.StringVar(&form.Description, "description", "", "description")
		fs.StringVar(&form.DueDate, "due", "", "due date, YYYY-MM-DD")
		if err := fs.Parse(subArgs); err != nil {
			return usageError(err.Error())
		}
		return c.CreatePayment(ctx, form)

	case "reports":
		fs := newFlagSet("reports", stderr)
		start := fs.String("start", "", "first day, YYYY-MM-DD")
		end := fs.String("end", "", "last day, YYYY-MM-DD")
		if err := fs.Parse(rest); err != nil {
			return usageError(err.Error())
		}
		return c.Reports(ctx, *start, *end)

	case "seed":
		return c.Seed(ctx)

	default:
		return usageError(fmt.Sprintf("unknown command %q", cmd))
	}
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func subcommand(cmd string, args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, usageError(cmd + " needs list or create")
	}
	switch args[0] {
	case "list", "create":
		return args[0], args[1:], nil
	default:
		return "", nil, usageError(fmt.Sprintf("unknown %s subcommand %q", cmd, args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%w: %s", ErrUsage, msg)
}

func readLine(r io.Reader) (string, error) {
	if r == nil {
		return "", io.EOF
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
