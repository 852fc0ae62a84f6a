package learning

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/codelearn-backend/internal/data/dbctx"
	types "github.com/yungbote/codelearn-backend/internal/domain"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
)

type CourseRepo interface {
	// Upsert inserts courses whose id is new. Existing rows are left untouched.
	Upsert(dbc dbctx.Context, courses []*types.Course) ([]*types.Course, error)
	GetByIDs(dbc dbctx.Context, courseIDs []string) ([]*types.Course, error)
	ListAll(dbc dbctx.Context) ([]*types.Course, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	repoLog := baseLog.With("repo", "CourseRepo")
	return &courseRepo{db: db, log: repoLog}
}

func (r *courseRepo) Upsert(dbc dbctx.Context, courses []*types.Course) ([]*types.Course, error) {
	if len(courses) == 0 {
		return []*types.Course{}, nil
	}
	if err := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) GetByIDs(dbc dbctx.Context, courseIDs []string) ([]*types.Course, error) {
	var results []*types.Course
	if len(courseIDs) == 0 {
		return results, nil
	}
	if err := dbc.DB(r.db).
		Where("id IN ?", courseIDs).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) ListAll(dbc dbctx.Context) ([]*types.Course, error) {
	var results []*types.Course
	if err := dbc.DB(r.db).
		Order("sort_order ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
