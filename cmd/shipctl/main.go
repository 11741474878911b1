// Copyright (c) 2026 Shipora. All rights reserved.
// Author: dev@shipora.app

// Command shipctl is a terminal client for the Shipora API.
//
// # Usage
//
//	shipctl [-server URL] <command> [arguments]
//
// Commands:
//
//	register    -name -email -phone -password   Create a customer account
//	login       -email -password                Sign in as a customer
//	admin-login -email -password                Sign in as an administrator
//	track       <tracking-id>                   Look up a shipment
//	whoami      [-admin]                        Show the stored session profile
//	logout      [-admin]                        Clear the stored session
//
// Sessions are stored in ~/.shipora/credentials.json with independent user
// and admin slots, so both roles can stay signed in side by side.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shipora/shipora/internal/client"
)

const defaultServer = "http://localhost:8080"

func main() {
	serverURL := flag.String("server", defaultServer, "Shipora API base URL")
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	store, err := newStore()
	fatalOn(err)

	sdk := client.New(*serverURL)
	guard := client.NewGuard(store)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "register":
		err = runRegister(ctx, sdk, store, args)
	case "login":
		err = runLogin(ctx, sdk, store, args)
	case "admin-login":
		err = runAdminLogin(ctx, sdk, store, args)
	case "track":
		err = runTrack(ctx, sdk, args)
	case "whoami":
		err = runWhoami(guard, args)
	case "logout":
		err = runLogout(store, args)
	default:
		err = fmt.Errorf("unknown command %q", command)
	}

	fatalOn(err)
}

func newStore() (*client.CredentialStore, error) {
	path, err := client.DefaultCredentialPath()
	if err != nil {
		return nil, err
	}
	return client.NewCredentialStore(path), nil
}

// # Commands

func runRegister(ctx context.Context, sdk *client.Client, store *client.CredentialStore, args []string) error {
	flags := flag.NewFlagSet("register", flag.ExitOnError)
	name := flags.String("name", "", "full name")
	email := flags.String("email", "", "email address")
	phone := flags.String("phone", "", "phone number (optional)")
	password := flags.String("password", "", "password (min 8 characters)")
	_ = flags.Parse(args)

	session, err := sdk.Register(ctx, *name, *email, *phone, *password)
	if err != nil {
		return err
	}

	// Registration returns a live session; store it immediately.
	if err := store.Save(client.SlotUser, client.AuthRecord{
		Token:   session.Token,
		Profile: session.Principal,
	}); err != nil {
		return err
	}

	fmt.Printf("registered and signed in as %s (%s)\n", session.Principal.Name, session.Principal.Email)
	return nil
}

func runLogin(ctx context.Context, sdk *client.Client, store *client.CredentialStore, args []string) error {
	return loginTo(ctx, args, client.SlotUser, store, sdk.Login)
}

func runAdminLogin(ctx context.Context, sdk *client.Client, store *client.CredentialStore, args []string) error {
	return loginTo(ctx, args, client.SlotAdmin, store, sdk.AdminLogin)
}

// loginTo is the shared flow behind both login commands; the two differ
// only in endpoint and credential slot.
func loginTo(
	ctx context.Context,
	args []string,
	slot client.Slot,
	store *client.CredentialStore,
	authenticate func(context.Context, string, string) (*client.Session, error),
) error {
	flags := flag.NewFlagSet("login", flag.ExitOnError)
	email := flags.String("email", "", "email address")
	password := flags.String("password", "", "password")
	_ = flags.Parse(args)

	session, err := authenticate(ctx, *email, *password)
	if err != nil {
		return err
	}

	if err := store.Save(slot, client.AuthRecord{
		Token:   session.Token,
		Profile: session.Principal,
	}); err != nil {
		return err
	}

	fmt.Printf("signed in as %s (%s)\n", session.Principal.Email, session.Principal.Role)
	return nil
}

func runTrack(ctx context.Context, sdk *client.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: shipctl track <tracking-id>")
	}

	record, err := sdk.TrackShipment(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s  %s\n", record.TrackingID, record.Status)
	fmt.Printf("route:    %s -> %s\n", record.Origin, record.Destination)
	fmt.Printf("location: %s\n", record.CurrentLocation)
	if record.EstimatedDelivery != nil {
		fmt.Printf("eta:      %s\n", record.EstimatedDelivery.Format("2006-01-02"))
	}

	fmt.Println("history:")
	for _, event := range record.History {
		line := fmt.Sprintf("  %s  %-16s %s", event.Timestamp.Format(time.RFC3339), event.Status, event.Location)
		if event.Note != "" {
			line += "  (" + event.Note + ")"
		}
		fmt.Println(line)
	}
	return nil
}

func runWhoami(guard *client.Guard, args []string) error {
	slot := slotFromArgs("whoami", args)

	profile := guard.CurrentPrincipal(slot)
	if profile == nil || !guard.Authenticated(slot) {
		return fmt.Errorf("no %s session stored; run 'shipctl login' first", slot)
	}

	fmt.Printf("%s <%s> role=%s id=%s\n", profile.Name, profile.Email, profile.Role, profile.ID)
	return nil
}

func runLogout(store *client.CredentialStore, args []string) error {
	slot := slotFromArgs("logout", args)

	if err := store.Clear(slot); err != nil {
		return err
	}

	fmt.Printf("%s session cleared\n", slot)
	return nil
}

// slotFromArgs resolves the -admin flag into a credential slot.
func slotFromArgs(name string, args []string) client.Slot {
	flags := flag.NewFlagSet(name, flag.ExitOnError)
	admin := flags.Bool("admin", false, "operate on the admin session")
	_ = flags.Parse(args)

	if *admin {
		return client.SlotAdmin
	}
	return client.SlotUser
}

func fatalOn(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "shipctl:", err)
		os.Exit(1)
	}
}
