package cmd

import (
	"fmt"
	"log"
	"time"

	leadDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/lead"
	projectDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/project"
	stageDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/stage"
	userDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/user"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const seedPassword = "password"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gdb, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if err := seed(gdb, clearData, cfg.Security.BCryptCost); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Println("Seeding complete. Every seeded account uses the password:", seedPassword)
	},
}

// seed inserts the sample data set. Rows that already exist are left alone, so
// running it twice is harmless.
func seed(db *gorm.DB, clear bool, bcryptCost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if clear {
			for _, table := range []string{"comment_tasks", "stages", "leads", "projects", "users"} {
				if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
					return fmt.Errorf("clear %s: %w", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		now := time.Now().UTC()
		users := []*userDatamodel.User{
			{ID: "9b0c6a55-1d8e-4c0a-9f0e-000000000001", Email: "maya@dashboard.local", FullName: "Maya Manager", Role: "manager"},
			{ID: "9b0c6a55-1d8e-4c0a-9f0e-000000000002", Email: "eli@dashboard.local", FullName: "Eli Employee", Role: "employee"},
			{ID: "9b0c6a55-1d8e-4c0a-9f0e-000000000003", Email: "erin@dashboard.local", FullName: "Erin Employee", Role: "employee"},
			{ID: "9b0c6a55-1d8e-4c0a-9f0e-000000000004", Email: "hello@contoso.example", FullName: "Contoso Ltd", Role: "client"},
			{ID: "9b0c6a55-1d8e-4c0a-9f0e-000000000005", Email: "team@globex.example", FullName: "Globex Corp", Role: "client"},
		}
		for _, u := range users {
			u.PasswordHash = string(hash)
			u.IsActive = true
			u.CreatedAt, u.UpdatedAt = now, now
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&users).Error; err != nil {
			return fmt.Errorf("seed users: %w", err)
		}

		projects := []*projectDatamodel.Project{
			{
				ID: "5f1d2c3b-7a6e-4d5c-8b9a-000000000001", Title: "Website Redesign",
				Description: "Refresh the marketing site and brochure",
				ClientID:    users[3].ID, ClientName: users[3].FullName,
				Deadline:          now.AddDate(0, 2, 0).Truncate(24 * time.Hour),
				AssignedEmployees: []string{users[1].ID},
				Priority:          "medium", Status: "active", ProgressPercentage: 40,
			},
			{
				ID: "5f1d2c3b-7a6e-4d5c-8b9a-000000000002", Title: "Mobile App",
				Description: "Customer-facing iOS and Android app",
				ClientID:    users[4].ID, ClientName: users[4].FullName,
				Deadline:          now.AddDate(0, 4, 0).Truncate(24 * time.Hour),
				AssignedEmployees: []string{users[1].ID, users[2].ID},
				Priority:          "high", Status: "active", ProgressPercentage: 15,
			},
			{
				ID: "5f1d2c3b-7a6e-4d5c-8b9a-000000000003", Title: "Brand Audit",
				Description: "Review of visual identity assets",
				ClientID:    users[3].ID, ClientName: users[3].FullName,
				Deadline:          now.AddDate(0, -1, 0).Truncate(24 * time.Hour),
				AssignedEmployees: []string{users[2].ID},
				Priority:          "low", Status: "completed", ProgressPercentage: 100,
			},
		}
		for i, p := range projects {
			p.CreatedAt = now.Add(-time.Duration(len(projects)-i) * time.Hour)
			p.UpdatedAt = p.CreatedAt
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&projects).Error; err != nil {
			return fmt.Errorf("seed projects: %w", err)
		}

		stages := []*stageDatamodel.Stage{
			{ID: "a7c1e2d3-0000-4000-8000-000000000001", ProjectID: projects[0].ID, Name: "Discovery", Position: 1, Status: "done"},
			{ID: "a7c1e2d3-0000-4000-8000-000000000002", ProjectID: projects[0].ID, Name: "Design", Position: 2, Status: "in_progress"},
			{ID: "a7c1e2d3-0000-4000-8000-000000000003", ProjectID: projects[0].ID, Name: "Launch", Position: 3, Status: "pending"},
			{ID: "a7c1e2d3-0000-4000-8000-000000000004", ProjectID: projects[1].ID, Name: "Prototype", Position: 1, Status: "in_progress"},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&stages).Error; err != nil {
			return fmt.Errorf("seed stages: %w", err)
		}

		tasks := []*stageDatamodel.CommentTask{
			{ID: "b8d2f3e4-0000-4000-8000-000000000001", ProjectID: projects[0].ID, StageID: stages[1].ID, Title: "Approve homepage mockup", Status: "todo", AssignedTo: users[1].ID},
			{ID: "b8d2f3e4-0000-4000-8000-000000000002", ProjectID: projects[0].ID, StageID: stages[0].ID, Title: "Collect brand assets", Status: "done", AssignedTo: users[1].ID},
			{ID: "b8d2f3e4-0000-4000-8000-000000000003", ProjectID: projects[1].ID, StageID: stages[3].ID, Title: "Clickable onboarding flow", Status: "in_progress", AssignedTo: users[2].ID},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tasks).Error; err != nil {
			return fmt.Errorf("seed comment tasks: %w", err)
		}

		leads := []*leadDatamodel.Lead{
			{ID: "c9e3a4f5-0000-4000-8000-000000000001", Name: "Acme", ContactInfo: "a@acme.com", EstimatedAmount: 5000},
			{ID: "c9e3a4f5-0000-4000-8000-000000000002", Name: "Initech", ContactInfo: "bill@initech.example", EstimatedAmount: 12000, Notes: "Wants a quote by Friday"},
		}
		for _, l := range leads {
			l.CreatedAt, l.UpdatedAt = now, now
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&leads).Error; err != nil {
			return fmt.Errorf("seed leads: %w", err)
		}

		fmt.Printf("Seeded %d users, %d projects, %d stages, %d tasks, %d leads\n",
			len(users), len(projects), len(stages), len(tasks), len(leads))
		return nil
	})
}
