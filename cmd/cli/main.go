package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/moeeznaveed278/myplug/internal/models"
	"github.com/moeeznaveed278/myplug/internal/store"
)

func main() {
	addUserCmd := flag.NewFlagSet("add-user", flag.ExitOnError)
	username := addUserCmd.String("username", "", "Username for the new user")
	password := addUserCmd.String("password", "", "Password for the new user")

	seedReviewsCmd := flag.NewFlagSet("seed-reviews", flag.ExitOnError)

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-user' or 'seed-reviews' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-user":
		addUserCmd.Parse(os.Args[2:])
		if *username == "" || *password == "" {
			fmt.Println("username and password are required")
			addUserCmd.PrintDefaults()
			os.Exit(1)
		}
		createUser(*username, *password)
	case "seed-reviews":
		seedReviewsCmd.Parse(os.Args[2:])
		seedReviews()
	default:
		fmt.Println("expected 'add-user' or 'seed-reviews' subcommand")
		os.Exit(1)
	}
}

func openStore() *store.Store {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./myplug.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// Ensure tables exist if running cli before server
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}
	return db
}

func createUser(username, password string) {
	db := openStore()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	err = db.CreateUser(username, string(hashedPassword))
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User '%s' created successfully.\n", username)
}

var cannedReviews = []models.Review{
	{UserName: "Marcus T.", Rating: 5, Comment: "Exactly as described, shipped fast. Will buy again."},
	{UserName: "Jenna L.", Rating: 5, Comment: "Pair came double boxed and verified. Great communication."},
	{UserName: "Dev P.", Rating: 4, Comment: "Solid price compared to other plugs. Took a few days to ship."},
	{UserName: "Sofia R.", Rating: 5, Comment: "Got my grails here after months of searching. Legit."},
	{UserName: "Andre K.", Rating: 5, Comment: "Best prices in the city, pickup was quick and easy."},
	{UserName: "Maya W.", Rating: 4, Comment: "Shoes were clean and authentic. Sizing ran a bit small."},
	{UserName: "Chris B.", Rating: 5, Comment: "Second order, zero issues. My go-to from now on."},
	{UserName: "Tara N.", Rating: 5, Comment: "Fast replies, fair prices, real pairs. Recommended."},
}

// seedReviews spreads the canned reviews across the current catalog so a
// fresh install doesn't show empty product pages.
func seedReviews() {
	db := openStore()

	products, err := db.ListProducts(store.ProductFilter{})
	if err != nil {
		log.Fatalf("Failed to list products: %v", err)
	}
	if len(products) == 0 {
		fmt.Println("No products to attach reviews to. Add products first.")
		return
	}

	count := 0
	for i, rv := range cannedReviews {
		rv.ProductID = products[i%len(products)].ID
		if err := db.CreateReview(&rv); err != nil {
			log.Fatalf("Failed to create review: %v", err)
		}
		count++
	}

	fmt.Printf("Seeded %d reviews across %d products.\n", count, len(products))
}
