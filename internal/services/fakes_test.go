package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"catalog-api/internal/models"
)

// In-memory stand-ins for the Mongo repositories. They reproduce the store
// behavior the services rely on: (nil, nil) for missing records, active-state
// filtering, substring search and newest-first ordering.

type fakeUserRepo struct {
	users []*models.User
}

func (f *fakeUserRepo) EnsureUserIndexes(ctx context.Context) error { return nil }

func (f *fakeUserRepo) InsertUser(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.UserName == user.UserName || u.Email == user.Email || u.UserID == user.UserID {
			return &models.ConflictError{Message: "user with this email or username already exists"}
		}
	}
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) FindUserByName(ctx context.Context, userName string) (*models.User, error) {
	for _, u := range f.users {
		if u.UserName == userName {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	for _, u := range f.users {
		if u.UserID == userID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindUserByNameOrEmail(ctx context.Context, userName, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.UserName == userName || u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	out := append([]*models.User{}, f.users...)
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (f *fakeUserRepo) UpdateUserFields(ctx context.Context, userID int64, fields map[string]interface{}) (*models.User, error) {
	for _, u := range f.users {
		if u.UserID != userID {
			continue
		}
		for k, v := range fields {
			switch k {
			case "first_name":
				u.FirstName = v.(string)
			case "last_name":
				u.LastName = v.(string)
			case "email":
				u.Email = v.(string)
			case "birth_date":
				u.BirthDate = v.(time.Time)
			case "status":
				u.Status = v.(bool)
			case "isAdmin":
				u.IsAdmin = v.(bool)
			case "preferences.page_size":
				u.Preferences.PageSize = v.(int)
			}
		}
		u.UpdatedAt = time.Now()
		return u, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) CountUsers(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeProductRepo struct {
	products []*models.Product
}

func (f *fakeProductRepo) EnsureProductIndexes(ctx context.Context) error { return nil }

func (f *fakeProductRepo) InsertProduct(ctx context.Context, product *models.Product) error {
	for _, p := range f.products {
		if p.ProductID == product.ProductID {
			return &models.ConflictError{Message: "product with this id already exists"}
		}
	}
	f.products = append(f.products, product)
	return nil
}

func (f *fakeProductRepo) InsertProducts(ctx context.Context, products []*models.Product) error {
	for _, p := range products {
		if err := f.InsertProduct(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeProductRepo) FindActiveProductByID(ctx context.Context, productID int64) (*models.Product, error) {
	for _, p := range f.products {
		if p.ProductID == productID && p.State == models.ProductActive {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) ListActiveProducts(ctx context.Context, query string, skip, limit int64) ([]*models.Product, int64, error) {
	q := strings.ToLower(query)
	matched := []*models.Product{}
	for _, p := range f.products {
		if p.State != models.ProductActive {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.ProductName), q) &&
			!strings.Contains(strings.ToLower(p.ProductDescription), q) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreationDate.After(matched[j].CreationDate)
	})

	total := int64(len(matched))
	if skip >= total {
		return []*models.Product{}, total, nil
	}
	matched = matched[skip:]
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (f *fakeProductRepo) UpdateProductFields(ctx context.Context, productID int64, fields map[string]interface{}) (*models.Product, error) {
	for _, p := range f.products {
		if p.ProductID != productID {
			continue
		}
		for k, v := range fields {
			switch k {
			case "product_name":
				p.ProductName = v.(string)
			case "product_description":
				p.ProductDescription = v.(string)
			case "product_image":
				p.ProductImage = v.(string)
			case "current_stock_level":
				p.CurrentStockLevel = v.(int)
			case "state":
				p.State = v.(models.ProductState)
			}
		}
		p.UpdatedAt = time.Now()
		return p, nil
	}
	return nil, nil
}

func (f *fakeProductRepo) CountProducts(ctx context.Context) (int64, error) {
	return int64(len(f.products)), nil
}
