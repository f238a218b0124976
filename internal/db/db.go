package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nifadyev/phresh/internal/auth"
	"github.com/nifadyev/phresh/internal/cleaning"
	"github.com/nifadyev/phresh/internal/evaluation"
	"github.com/nifadyev/phresh/internal/jobs"
	"github.com/nifadyev/phresh/internal/offer"
	"github.com/nifadyev/phresh/internal/profile"
)

func Connect(dsn string) (*gorm.DB, error) {
	// TranslateError maps driver unique-violations onto
	// gorm.ErrDuplicatedKey, which the services turn into conflicts.
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&auth.User{},
		&profile.Profile{},
		&cleaning.Cleaning{},
		&offer.Offer{},
		&evaluation.Evaluation{},
		&jobs.Job{},
	); err != nil {
		return err
	}

	// Last line of defense for the single-accepted-offer invariant: the
	// loser of a racing accept trips this index and surfaces a conflict.
	if err := gdb.Exec(`
create unique index if not exists uq_offers_accepted
on offers(cleaning_id)
where status = 'accepted';
`).Error; err != nil {
		return err
	}

	// An offer must not outlive its cleaning. The services delete offers
	// explicitly on cleaning delete; the FK closes the window where an
	// insert races that delete.
	fks := []string{
		`alter table offers add constraint fk_offers_cleaning
foreign key (cleaning_id) references cleanings(id) on delete cascade;`,
		`alter table evaluations add constraint fk_evaluations_cleaning
foreign key (cleaning_id) references cleanings(id) on delete cascade;`,
	}
	for _, s := range fks {
		// no "if not exists" for constraints; swallow duplicate_object
		if err := gdb.Exec(`do $$ begin ` + s + ` exception when duplicate_object then null; end $$;`).Error; err != nil {
			return fmt.Errorf("fk exec failed: %w (sql=%s)", err, s)
		}
	}

	// Helpful indexes
	stmts := []string{
		`create index if not exists idx_cleanings_created on cleanings(created_at desc, id desc);`,
		`create index if not exists idx_cleanings_updated on cleanings(updated_at desc, id desc);`,
		`create index if not exists idx_offers_cleaning_status on offers(cleaning_id, status);`,
		`create index if not exists idx_evaluations_cleaner on evaluations(cleaner_id, created_at desc);`,
		`create index if not exists idx_jobs_due on jobs(status, run_at);`,
		`create index if not exists idx_jobs_lock on jobs(status, locked_at);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
