package catalog

import (
	"context"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// QuestionSet is the on-disk shape of a question definitions file.
type QuestionSet struct {
	Questions []Question `yaml:"questions" json:"questions" validate:"dive"`
}

// Load reads the catalog from a file path or URL.
func Load(ctx context.Context, location string) (data Catalog, err error) {
	var raw []byte
	raw, err = FetchWithContext(ctx, location)
	if err != nil {
		err = errors.Wrap(err, "failed to load catalog")
		return data, err
	}

	data, err = Parse(raw)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse catalog: %s", location)
		return data, err
	}

	return data, err
}

// Parse decodes and validates a catalog document.
func Parse(raw []byte) (data Catalog, err error) {
	err = json.Unmarshal(raw, &data)
	if err != nil {
		err = errors.Wrap(err, "failed to parse catalog JSON")
		return data, err
	}

	err = data.Validate()
	if err != nil {
		err = errors.Wrap(err, "catalog validation failed")
		return data, err
	}

	return data, err
}

// Validate checks that the catalog is well-formed.
func (c *Catalog) Validate() (err error) {
	if len(c.Products) == 0 {
		err = errors.New("no products found in catalog")
		return err
	}

	err = validateStruct(c)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Products))
	for _, p := range c.Products {
		if seen[p.ID] {
			err = errors.Errorf("duplicate product id %s", p.ID)
			return err
		}
		seen[p.ID] = true
	}

	return err
}

// ByCategory returns the products of one category in catalog order.
func (c *Catalog) ByCategory(category string) (products []Product) {
	products = make([]Product, 0)
	for _, p := range c.Products {
		if strings.EqualFold(p.Category, category) {
			products = append(products, p)
		}
	}
	return products
}

// Find returns a product by id.
func (c *Catalog) Find(id string) (product Product, ok bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return product, ok
}

// LoadQuestions reads question definitions from a YAML file.
func LoadQuestions(path string) (questions []Question, err error) {
	var fileData []byte
	fileData, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read questions file: %s", path)
		return questions, err
	}

	var set QuestionSet
	err = yaml.Unmarshal(fileData, &set)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse questions YAML: %s", path)
		return questions, err
	}

	err = set.Validate()
	if err != nil {
		err = errors.Wrap(err, "questions validation failed")
		return questions, err
	}

	questions = set.Questions

	return questions, err
}

// Validate checks that question ids are unique within each category.
func (s *QuestionSet) Validate() (err error) {
	if len(s.Questions) == 0 {
		err = errors.New("no questions defined")
		return err
	}

	err = validateStruct(s)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(s.Questions))
	for _, q := range s.Questions {
		key := strings.ToLower(q.Category) + "/" + q.ID
		if seen[key] {
			err = errors.Errorf("question %s defined twice for category %s", q.ID, q.Category)
			return err
		}
		seen[key] = true
	}

	return err
}
