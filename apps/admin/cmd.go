package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/trezcool/mahafali/core"
	"github.com/trezcool/mahafali/core/table"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf    *core.Config
	fetcher table.Fetcher
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  gentoken -user ID [-username NAME] [-email EMAIL] [-dept ID] [-roles R1,R2] [-staff] [-superuser] - mint an API token")
	fmt.Println("  fetch -table NAME [-fields F1,F2] - dump an upstream table as JSON")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	genTokenCmd := flag.NewFlagSet("gentoken", flag.ExitOnError)
	genTokenUser := genTokenCmd.Int("user", 0, "The user's upstream id.")
	genTokenUname := genTokenCmd.String("username", "", "The user's username.")
	genTokenEmail := genTokenCmd.String("email", "", "The user's email.")
	genTokenDept := genTokenCmd.Int("dept", 0, "The user's department id, if directly known.")
	genTokenRoles := genTokenCmd.String("roles", "", "Comma-separated raw role labels.")
	genTokenStaff := genTokenCmd.Bool("staff", false, "Mark the user as staff.")
	genTokenSuper := genTokenCmd.Bool("superuser", false, "Mark the user as superuser.")

	fetchCmd := flag.NewFlagSet("fetch", flag.ExitOnError)
	fetchTable := fetchCmd.String("table", "", "The upstream table name.")
	fetchFields := fetchCmd.String("fields", "", "Comma-separated field names; all known fields when empty.")

	switch args[1] {
	case "gentoken":
		if err := genTokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *genTokenUser == 0 {
			genTokenCmd.Usage()
			return errHelp
		}
		return cli.genToken(
			*genTokenUser, *genTokenUname, *genTokenEmail, *genTokenDept,
			*genTokenRoles, *genTokenStaff, *genTokenSuper,
		)
	case "fetch":
		if err := fetchCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *fetchTable == "" {
			fetchCmd.Usage()
			return errHelp
		}
		return cli.fetch(*fetchTable, *fetchFields)
	default:
		cli.printUsage()
		return errHelp
	}
}
