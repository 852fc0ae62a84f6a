// Package catalog loads the built-in course catalog and writes it to storage.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	types "github.com/yungbote/codelearn-backend/internal/domain"
	"github.com/yungbote/codelearn-backend/internal/modules/learning/progress"
)

// CatalogDirEnv points at a directory of *.yaml course files that replaces
// the embedded catalog.
const CatalogDirEnv = "SEED_CATALOG_DIR"

const defaultTopicDuration = 60

//go:embed seed/*.yaml
var seedFS embed.FS

type Catalog struct {
	Courses []CourseSeed
}

type CourseSeed struct {
	ID          string      `yaml:"id"`
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	Order       int         `yaml:"order"`
	Topics      []TopicSeed `yaml:"topics"`
}

// TopicSeed is one lesson. Its order is its 1-based position in Topics.
type TopicSeed struct {
	ID          string           `yaml:"id"`
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Duration    int              `yaml:"duration"`
	Content     string           `yaml:"content"`
	Exercises   []types.Exercise `yaml:"exercises"`
}

// Load reads the catalog from CatalogDirEnv when set, else from the embedded files.
func Load() (*Catalog, error) {
	if dir := strings.TrimSpace(os.Getenv(CatalogDirEnv)); dir != "" {
		return LoadFS(os.DirFS(dir), "*.yaml")
	}
	return LoadFS(seedFS, "seed/*.yaml")
}

func LoadFS(fsys fs.FS, pattern string) (*Catalog, error) {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no catalog files match %s", pattern)
	}
	sort.Strings(names)

	cat := &Catalog{}
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var c CourseSeed
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path.Base(name), err)
		}
		for i := range c.Topics {
			if c.Topics[i].Duration <= 0 {
				c.Topics[i].Duration = defaultTopicDuration
			}
			for j := range c.Topics[i].Exercises {
				if c.Topics[i].Exercises[j].Hints == nil {
					c.Topics[i].Exercises[j].Hints = []string{}
				}
			}
		}
		cat.Courses = append(cat.Courses, c)
	}
	sort.SliceStable(cat.Courses, func(i, j int) bool {
		return cat.Courses[i].Order < cat.Courses[j].Order
	})
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// Validate rejects catalogs with missing ids or titles and with ids used twice.
// Topic ids are global, not per course.
func (c *Catalog) Validate() error {
	if c == nil || len(c.Courses) == 0 {
		return errors.New("catalog is empty")
	}
	var errs []error
	courseIDs := map[string]bool{}
	topicIDs := map[string]string{}
	for _, course := range c.Courses {
		id := strings.TrimSpace(course.ID)
		if id == "" {
			errs = append(errs, fmt.Errorf("course with title %q has no id", course.Title))
			continue
		}
		if courseIDs[id] {
			errs = append(errs, fmt.Errorf("duplicate course id %q", id))
		}
		courseIDs[id] = true
		if strings.TrimSpace(course.Title) == "" {
			errs = append(errs, fmt.Errorf("course %q has no title", id))
		}
		for i, t := range course.Topics {
			tid := strings.TrimSpace(t.ID)
			if tid == "" {
				errs = append(errs, fmt.Errorf("course %q topic #%d has no id", id, i+1))
				continue
			}
			if owner, ok := topicIDs[tid]; ok {
				errs = append(errs, fmt.Errorf("duplicate topic id %q (courses %q and %q)", tid, owner, id))
			}
			topicIDs[tid] = id
			if strings.TrimSpace(t.Title) == "" {
				errs = append(errs, fmt.Errorf("topic %q has no title", tid))
			}
		}
	}
	return errors.Join(errs...)
}

func (c *Catalog) TopicCount() int {
	n := 0
	for _, course := range c.Courses {
		n += len(course.Topics)
	}
	return n
}

// Rows converts the catalog into storable rows. Topic status is the initial
// status for its position; it only lands on insert.
func (c *Catalog) Rows() ([]*types.Course, []*types.Topic, []*types.TopicContent) {
	courses := make([]*types.Course, 0, len(c.Courses))
	topics := make([]*types.Topic, 0, c.TopicCount())
	contents := make([]*types.TopicContent, 0, c.TopicCount())
	for _, course := range c.Courses {
		courses = append(courses, &types.Course{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
			Order:       course.Order,
		})
		for i, t := range course.Topics {
			order := i + 1
			topics = append(topics, &types.Topic{
				ID:          t.ID,
				CourseID:    course.ID,
				Order:       order,
				Title:       t.Title,
				Description: t.Description,
				Duration:    t.Duration,
				Status:      progress.InitialStatus(order),
			})
			exercises := make([]types.Exercise, len(t.Exercises))
			copy(exercises, t.Exercises)
			contents = append(contents, &types.TopicContent{
				TopicID:   t.ID,
				Content:   t.Content,
				Exercises: exercises,
			})
		}
	}
	return courses, topics, contents
}
