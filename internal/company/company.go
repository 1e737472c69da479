// Package company stores the single-row business profile printed on
// invoice documents.
package company

import (
	"context"

	"github.com/smallbiznis/facturo/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Company is the issuing business. One row is assumed; Save upserts it.
type Company struct {
	ID      int64  `gorm:"primaryKey" json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

func (Company) TableName() string { return "companies" }

type Service interface {
	// Get returns the profile, or a zero value when none was saved yet.
	Get(ctx context.Context) (Company, error)
	Save(ctx context.Context, profile Company) (Company, error)
}

type Params struct {
	fx.In

	DB  *db.Manager
	Log *zap.Logger
}

type service struct {
	db  *db.Manager
	log *zap.Logger
}

func New(p Params) Service {
	return &service{
		db:  p.DB,
		log: p.Log.Named("company.service"),
	}
}

func (s *service) Get(ctx context.Context) (Company, error) {
	conn, err := s.db.DB()
	if err != nil {
		return Company{}, err
	}

	var profile Company
	err = conn.WithContext(ctx).Raw(
		`SELECT id, name, address, email, phone FROM companies ORDER BY id LIMIT 1`,
	).Scan(&profile).Error
	if err != nil {
		return Company{}, err
	}
	return profile, nil
}

func (s *service) Save(ctx context.Context, profile Company) (Company, error) {
	conn, err := s.db.DB()
	if err != nil {
		return Company{}, err
	}

	profile.ID = 1
	err = conn.WithContext(ctx).Exec(
		`INSERT INTO companies (id, name, address, email, phone)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name,
		   address = excluded.address,
		   email = excluded.email,
		   phone = excluded.phone`,
		profile.ID,
		profile.Name,
		profile.Address,
		profile.Email,
		profile.Phone,
	).Error
	if err != nil {
		return Company{}, err
	}

	s.log.Info("company profile saved", zap.String("name", profile.Name))
	return profile, nil
}

var Module = fx.Module("company.service",
	fx.Provide(New),
)
