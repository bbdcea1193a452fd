package services

import (
	"context"
	"strings"
	"time"
	"warehouse-app/cache"
	"warehouse-app/models"
	"warehouse-app/repositories"
	"warehouse-app/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EmployeeService struct {
	db    *gorm.DB
	log   *zap.Logger
	cache *cache.Cache
}

func NewEmployeeService(db *gorm.DB, log *zap.Logger, c *cache.Cache) *EmployeeService {
	return &EmployeeService{db: db, log: log.Named("employee"), cache: c}
}

type EmployeeInput struct {
	FirstName      string `json:"first_name" validate:"required,notblank,max=100"`
	LastName       string `json:"last_name" validate:"required,notblank,max=100"`
	MiddleName     string `json:"middle_name" validate:"max=100"`
	PassportSeries string `json:"passport_series" validate:"required,len=4,numeric"`
	PassportNumber string `json:"passport_number" validate:"required,len=6,numeric"`
	Phone          string `json:"phone" validate:"required,len=11,numeric"`
	Post           string `json:"post" validate:"required,notblank"`
	WarehouseIDs   []uint `json:"warehouse_ids"`
}

type UpdateEmployeeInput struct {
	Phone        string `json:"phone" validate:"required,len=11,numeric"`
	Post         string `json:"post" validate:"required,notblank"`
	WarehouseIDs []uint `json:"warehouse_ids"`
	IsActive     *bool  `json:"is_active" validate:"required"`
}

type PostInput struct {
	Name   string          `json:"name" validate:"required,notblank,max=100"`
	Salary decimal.Decimal `json:"salary"`
}

func (s *EmployeeService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	employees, err := repositories.NewEmployeeRepository(s.db.WithContext(ctx)).List()
	if err != nil {
		return nil, classify(s.log, "list_employees", err)
	}
	return employees, nil
}

// AddEmployee hires a person: unique passport, known post, existing warehouses.
func (s *EmployeeService) AddEmployee(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.MiddleName = strings.TrimSpace(in.MiddleName)
	in.Post = strings.TrimSpace(in.Post)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, validationError(err.Error())
	}

	var employee *models.Employee
	err := runInTx(ctx, s.db, s.log, "add_employee", func(tx *gorm.DB) error {
		repo := repositories.NewEmployeeRepository(tx)

		exists, err := repo.PassportExists(in.PassportSeries, in.PassportNumber)
		if err != nil {
			return err
		}
		if exists {
			return businessError(CodeEmployeeExists, "employee with this passport already exists", nil)
		}

		post, err := repo.FindPostByName(in.Post)
		if err != nil {
			if isNotFound(err) {
				return businessError(CodePostNotFound, "post not found", map[string]interface{}{"Post": in.Post})
			}
			return err
		}
		warehouses, err := resolveWarehouses(tx, in.WarehouseIDs)
		if err != nil {
			return err
		}

		employee = &models.Employee{
			FirstName:        in.FirstName,
			LastName:         in.LastName,
			MiddleName:       in.MiddleName,
			PassportSeries:   in.PassportSeries,
			PassportNumber:   in.PassportNumber,
			Phone:            in.Phone,
			PostID:           post.ID,
			DateOfEmployment: time.Now(),
			IsActive:         true,
			Warehouses:       warehouses,
		}
		if err := repo.Create(employee); err != nil {
			return err
		}
		employee.Post = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("employee added", zap.Uint("employee_id", employee.ID))
	return employee, nil
}

// UpdateEmployee changes contact, post, warehouse set and active flag.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uint, in UpdateEmployeeInput) (*models.Employee, error) {
	in.Post = strings.TrimSpace(in.Post)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, validationError(err.Error())
	}

	var employee *models.Employee
	err := runInTx(ctx, s.db, s.log, "update_employee", func(tx *gorm.DB) error {
		repo := repositories.NewEmployeeRepository(tx)
		found, err := repo.FindByID(id)
		if err != nil {
			if isNotFound(err) {
				return businessError(CodeEmployeeNotFound, "employee not found", nil)
			}
			return err
		}
		post, err := repo.FindPostByName(in.Post)
		if err != nil {
			if isNotFound(err) {
				return businessError(CodePostNotFound, "post not found", map[string]interface{}{"Post": in.Post})
			}
			return err
		}
		warehouses, err := resolveWarehouses(tx, in.WarehouseIDs)
		if err != nil {
			return err
		}

		if err := repo.Update(found, map[string]interface{}{
			"phone":     in.Phone,
			"post_id":   post.ID,
			"is_active": *in.IsActive,
		}); err != nil {
			return err
		}
		if err := repo.ReplaceWarehouses(found, warehouses); err != nil {
			return err
		}
		found.Phone = in.Phone
		found.PostID = post.ID
		found.Post = post
		found.IsActive = *in.IsActive
		found.Warehouses = warehouses
		employee = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if s.cache.GetJSON(ctx, cache.POSTS_CACHE_KEY, &posts) {
		return posts, nil
	}
	posts, err := repositories.NewEmployeeRepository(s.db.WithContext(ctx)).ListPosts()
	if err != nil {
		return nil, classify(s.log, "list_posts", err)
	}
	s.cache.SetJSON(ctx, cache.POSTS_CACHE_KEY, posts)
	return posts, nil
}

func (s *EmployeeService) AddPost(ctx context.Context, in PostInput) (*models.Post, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, validationError(err.Error())
	}
	if in.Salary.IsNegative() {
		return nil, validationError("salary: must not be negative")
	}

	post := &models.Post{Name: in.Name, Salary: in.Salary.Round(2)}
	err := runInTx(ctx, s.db, s.log, "add_post", func(tx *gorm.DB) error {
		repo := repositories.NewEmployeeRepository(tx)
		if _, err := repo.FindPostByName(in.Name); err == nil {
			return businessError(CodePostExists, "post already exists", nil)
		} else if !isNotFound(err) {
			return err
		}
		return repo.CreatePost(post)
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cache.POSTS_CACHE_KEY)
	return post, nil
}

func resolveWarehouses(tx *gorm.DB, ids []uint) ([]models.Warehouse, error) {
	ids = utils.NormalizeIDs(ids)
	if len(ids) == 0 {
		return []models.Warehouse{}, nil
	}
	warehouses, err := repositories.NewMasterRepository(tx).WarehousesByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(warehouses) != len(ids) {
		return nil, businessError(CodeWarehouseNotFound, "warehouse not found", nil)
	}
	return warehouses, nil
}
