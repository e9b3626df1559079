package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/recipebox/recipebox/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// register prompts for account details and creates a new account. A fresh
// session starts immediately on success.
func (a *App) register(ctx context.Context) {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer common.WipeByteArray(password)

	user, err := a.client.Register(ctx, username, email, string(password))
	if err != nil {
		fmt.Println("Registration failed:", err)
		return
	}

	a.userName = user.Username
	fmt.Printf("Welcome, %s!\n", user.Username)
}

// login prompts for credentials and authenticates.
func (a *App) login(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer common.WipeByteArray(password)

	user, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		fmt.Println("Login failed:", err)
		return
	}

	a.userName = user.Username
	fmt.Printf("Welcome back, %s!\n", user.Username)
}

// passwd changes the logged-in user's password after re-prompting for the
// current one.
func (a *App) passwd(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Log in first")
		return
	}

	current, err := getPassword(os.Stdout, "Current password")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer common.WipeByteArray(current)

	newPw, err := getPassword(os.Stdout, "New password")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer common.WipeByteArray(newPw)

	if err := a.client.UpdatePassword(ctx, string(current), string(newPw)); err != nil {
		fmt.Println("Password change failed:", err)
		return
	}
	fmt.Println("Password updated")
}

// logout drops the session token.
func (a *App) logout(_ context.Context) {
	a.client.Logout()
	a.userName = ""
	fmt.Println("Logged out")
}
