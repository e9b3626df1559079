package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/recipebox/recipebox/internal/client/api"
)

func printRecipeLine(r api.Recipe) {
	fmt.Printf("%s  %-25s %-8s by %s  (%s)\n",
		r.ID, r.Name, r.Difficulty, r.Author, r.CreatedAt.Format("2006-01-02"))
}

// list shows every recipe on the server, newest first.
func (a *App) list(ctx context.Context) {
	recipes, err := a.client.Recipes(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(recipes) == 0 {
		fmt.Println("No recipes yet")
		return
	}
	for _, r := range recipes {
		printRecipeLine(r)
	}
}

// mine shows the logged-in user's recipes, newest first.
func (a *App) mine(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Log in first")
		return
	}

	recipes, err := a.client.MyRecipes(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(recipes) == 0 {
		fmt.Println("You have no recipes yet")
		return
	}
	for _, r := range recipes {
		printRecipeLine(r)
	}
}

// show prints a single recipe in full.
func (a *App) show(ctx context.Context, id string) {
	r, err := a.client.Recipe(ctx, id)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("%s (%s)\n", r.Name, r.Difficulty)
	if r.Author != "" {
		fmt.Printf("by %s, %s\n", r.Author, r.CreatedAt.Format("2006-01-02"))
	}
	fmt.Println("\nIngredients:")
	fmt.Println(r.Ingredients)
	fmt.Println("\nInstructions:")
	fmt.Println(r.Instructions)
	if r.Image != "" {
		fmt.Println("\nImage:", r.Image)
	}
}

// add prompts for recipe fields and creates it.
func (a *App) add(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Log in first")
		return
	}

	name, err := getSimpleText(a.reader, "Recipe name", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	ingredients, err := GetMultiline(a.reader, "Ingredients", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	instructions, err := GetMultiline(a.reader, "Instructions", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	difficulty, err := getSimpleText(a.reader, "Difficulty (Easy/Medium/Hard, default Easy)", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	r, err := a.client.CreateRecipe(ctx, api.CreateRecipeRequest{
		Name:         name,
		Ingredients:  ingredients,
		Instructions: instructions,
		Difficulty:   difficulty,
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Created recipe", r.ID)
}

// delete removes one of the logged-in user's recipes.
func (a *App) delete(ctx context.Context, id string) {
	if !a.isLoggedIn() {
		fmt.Println("Log in first")
		return
	}

	if err := a.client.DeleteRecipe(ctx, id); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Deleted recipe", id)
}
