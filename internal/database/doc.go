// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, sentinel place
//	├── plaatsen/        # Places (postcode + deelgemeente)
//	├── personen/        # Deelnemers and overige personen with their addresses
//	├── organisaties/    # Organisations and contact persons
//	├── locaties/        # Course locations
//	├── projecten/       # Courses, vacations, activities, begeleiders
//	├── aanmeldingen/    # Enrollments, participations, first-enrollment flags
//	├── importruns/      # Seeding run history
//	├── rapportages/     # Raw report queries
//	└── seedstore/       # importers.Store over the repositories above
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase(database.Options{Path: "./beheer.db"}, logger)
//
//	personenRepo := personen.NewRepository(db.DB)
//	deelnemer, err := personenRepo.GetByID(ctx, 42, entities.PersoonTypeDeelnemer)
//
// Repositories return ErrNotFound and ErrDuplicate (wrapped) instead of the
// raw gorm errors; see Translate.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check in internal/interfaces
package database
