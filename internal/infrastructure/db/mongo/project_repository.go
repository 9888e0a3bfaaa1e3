package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aseds/hive-platform/internal/core/domain"
)

const projectCollection = "projects"

// ProjectRepository implements ports.ProjectRepository on MongoDB.
type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(projectCollection)}
}

type mongoProject struct {
	ID               string    `bson:"_id"`
	Name             string    `bson:"name"`
	Description      string    `bson:"description,omitempty"`
	StartDate        time.Time `bson:"start_date"`
	EndDate          time.Time `bson:"end_date,omitempty"`
	ProjectManagerID string    `bson:"project_manager_id"`
	EmployeeIDs      []string  `bson:"employee_ids"`
}

// Create inserts a new project document. A duplicate-key violation on the
// name index maps to domain.ErrDuplicateProject.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, toMongoProject(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateProject
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"name": name}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count projects: %w", err)
	}
	return n > 0, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProject
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return fromMongoProject(mp), nil
}

// AddEmployees unions the given IDs into the employee set atomically and
// returns the updated document. $addToSet keeps the set semantics: IDs
// already present are no-ops.
func (r *ProjectRepository) AddEmployees(ctx context.Context, id string, employeeIDs []string) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$addToSet": bson.M{"employee_ids": bson.M{"$each": employeeIDs}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mp mongoProject
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("add employees: %w", err)
	}
	return fromMongoProject(mp), nil
}

func (r *ProjectRepository) ListByManager(ctx context.Context, managerID string) ([]*domain.Project, error) {
	return r.list(ctx, bson.M{"project_manager_id": managerID})
}

func (r *ProjectRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.Project, error) {
	return r.list(ctx, bson.M{"employee_ids": employeeID})
}

func (r *ProjectRepository) list(ctx context.Context, filter bson.M) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoProject
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	projects := make([]*domain.Project, 0, len(docs))
	for _, d := range docs {
		projects = append(projects, fromMongoProject(d))
	}
	return projects, nil
}

// EnsureIndexes creates the unique name index (uniqueness backstop) plus the
// query indexes for manager and employee listings.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "project_manager_id", Value: 1}}},
		{Keys: bson.D{{Key: "employee_ids", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func toMongoProject(p *domain.Project) mongoProject {
	employeeIDs := p.EmployeeIDs
	if employeeIDs == nil {
		employeeIDs = []string{}
	}
	return mongoProject{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		StartDate:        p.StartDate.UTC(),
		EndDate:          p.EndDate.UTC(),
		ProjectManagerID: p.ProjectManagerID,
		EmployeeIDs:      employeeIDs,
	}
}

func fromMongoProject(mp mongoProject) *domain.Project {
	return &domain.Project{
		ID:               mp.ID,
		Name:             mp.Name,
		Description:      mp.Description,
		StartDate:        mp.StartDate,
		EndDate:          mp.EndDate,
		ProjectManagerID: mp.ProjectManagerID,
		EmployeeIDs:      mp.EmployeeIDs,
	}
}
