//cmd/seeder/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"

	"github.com/marketjoys/AutomatedResponder/internal/config"
	"github.com/marketjoys/AutomatedResponder/internal/db"
	"github.com/marketjoys/AutomatedResponder/internal/model"
	"github.com/marketjoys/AutomatedResponder/internal/repository"
)

func main() {
	lists := flag.Int("lists", 3, "prospect lists to create")
	perList := flag.Int("prospects", 40, "prospects per list")
	seed := flag.Uint64("seed", 0, "faker seed, 0 picks a random one")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.MustLoad()
	conn, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := db.Migrate(conn, cfg.Database.MigrationsPath); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	faker := gofakeit.New(*seed)

	listRepo := &repository.ProspectListRepository{DB: conn}
	prospectRepo := &repository.ProspectRepository{DB: conn}
	templateRepo := &repository.TemplateRepository{DB: conn}
	campaignRepo := &repository.CampaignRepository{DB: conn}

	template := &model.Template{
		Name:    "Outreach Intro",
		Subject: "Quick question, {first_name}",
		Content: "Hi {first_name},\n\nI came across {company} and figured the {job_title} team might want a look at what we are building.\n\nBest,\nThe MarketJoys team",
	}
	if err := templateRepo.Create(template); err != nil {
		log.Fatalf("failed to create template: %v", err)
	}
	fmt.Printf("Seeded template: %s\n", template.ID)

	listIDs := []string{}
	for i := 0; i < *lists; i++ {
		list := fakeList(faker)
		if err := listRepo.Create(list); err != nil {
			log.Fatalf("failed to create list: %v", err)
		}
		listIDs = append(listIDs, list.ID)

		for j := 0; j < *perList; j++ {
			p := fakeProspect(faker)
			if err := prospectRepo.Create(p); err != nil {
				log.Fatalf("failed to create prospect: %v", err)
			}
			if err := prospectRepo.AddToList(list.ID, p.ID); err != nil {
				log.Fatalf("failed to add prospect to list: %v", err)
			}
		}
		fmt.Printf("Seeded list %q with %d prospects\n", list.Name, *perList)
	}

	campaign := &model.Campaign{
		Name:       fmt.Sprintf("Outreach %d", time.Now().Year()),
		TemplateID: template.ID,
		ListIDs:    listIDs,
		MaxEmails:  model.DefaultMaxEmails,
	}
	if err := campaignRepo.Create(campaign); err != nil {
		log.Fatalf("failed to create campaign: %v", err)
	}
	fmt.Printf("Seeded draft campaign: %s\n", campaign.ID)

	fmt.Println("Database seeding completed successfully!")
}

func fakeList(faker *gofakeit.Faker) *model.ProspectList {
	return &model.ProspectList{
		Name:        faker.Company() + " Leads",
		Description: faker.Sentence(),
	}
}

func fakeProspect(faker *gofakeit.Faker) *model.Prospect {
	return &model.Prospect{
		Email:     faker.Email(),
		FirstName: faker.FirstName(),
		LastName:  faker.LastName(),
		Company:   faker.Company(),
		JobTitle:  faker.JobTitle(),
		Location:  faker.City() + ", " + faker.Country(),
	}
}
