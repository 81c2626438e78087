// Package view renders the storefront's HTML pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"

	"storefront/internal/cart"
	"storefront/internal/menu"
	"storefront/internal/messages"
	"storefront/internal/model"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	PageHome       = "home"
	PageCategories = "categories"
	PageCategory   = "category"
	PageDish       = "dish"
	PageMenu       = "menu"
	PageOrders     = "orders"
	PageError      = "error"
)

var pages = []string{PageHome, PageCategories, PageCategory, PageDish, PageMenu, PageOrders, PageError}

var funcs = template.FuncMap{
	"slug":  menu.SlugURL,
	"plain": menu.PlainText,
	"add":   func(a, b int) int { return a + b },
	"sub": func(a, b int) int {
		if a-b < 0 {
			return 0
		}
		return a - b
	},
}

// Renderer executes the page templates.
type Renderer struct {
	templates map[string]*template.Template
	bundle    *messages.Bundle
	images    menu.ImageResolver
	publicURL string
	locales   []string
}

// New parses every page template against the shared layout.
func New(bundle *messages.Bundle, images menu.ImageResolver, publicURL string, locales []string) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template, len(pages)),
		bundle:    bundle,
		images:    images,
		publicURL: publicURL,
		locales:   locales,
	}
	for _, name := range pages {
		files := []string{"templates/layout.html", "templates/" + name + ".html"}
		if name == PageError {
			// The fallback page carries no navigation or other content.
			files = files[1:]
		}
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Page is the value every template executes against.
type Page struct {
	Locale      string
	Locales     []string
	Title       string
	Description string
	Canonical   string
	// Path is the locale-less path used by the language switcher.
	Path   string
	Notice string
	Data   any

	catalogue messages.Catalogue
	tag       language.Tag
	images    menu.ImageResolver
}

// NewPage returns a page bound to locale's catalogue and number format.
func (r *Renderer) NewPage(locale, path string) Page {
	return Page{
		Locale:    locale,
		Locales:   r.locales,
		Path:      path,
		Canonical: r.publicURL + "/" + locale + path,
		catalogue: r.bundle.For(locale),
		tag:       r.bundle.Tag(locale),
		images:    r.images,
	}
}

// T returns the translated string for key.
func (p Page) T(key string) string {
	return p.catalogue.T(key)
}

// Tf returns the translated string for key with placeholders filled from
// name/value pairs.
func (p Page) Tf(key string, pairs ...any) string {
	args := make(map[string]any, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		args[fmt.Sprint(pairs[i])] = pairs[i+1]
	}
	return p.catalogue.Format(key, args)
}

// Currency formats a price for the page's locale.
func (p Page) Currency(amount decimal.Decimal) string {
	return menu.FormatCurrency(p.tag, amount)
}

// ImageURL resolves a stored image reference.
func (p Page) ImageURL(path string) string {
	return p.images.Resolve(path)
}

// Href prefixes path with the page's locale.
func (p Page) Href(path string) string {
	return "/" + p.Locale + path
}

// Render executes page into w. Output is buffered so a template error never
// leaves a half-written response.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// HomeData backs the home page.
type HomeData struct {
	Dishes     []model.Dish
	Categories []model.Category
}

// CategoriesData backs the category listing.
type CategoriesData struct {
	Categories []model.Category
}

// CategoryData backs a category detail page.
type CategoryData struct {
	Category model.Category
	Dishes   []model.Dish
}

// DishData backs a dish detail page.
type DishData struct {
	Dish model.Dish
}

// MenuData backs the guest ordering page.
type MenuData struct {
	Sections   []menu.Section
	Quantities map[int]int
	LineCount  int
	Total      decimal.Decimal
}

// NewMenuData derives the stepper values, line count and total from a cart.
func NewMenuData(sections []menu.Section, dishes []model.Dish, c cart.Cart) MenuData {
	quantities := make(map[int]int, len(c))
	for _, line := range c {
		quantities[line.DishID] = line.Quantity
	}
	return MenuData{
		Sections:   sections,
		Quantities: quantities,
		LineCount:  len(c),
		Total:      cart.Total(c, dishes),
	}
}

// OrdersData backs the order tracking page.
type OrdersData struct {
	Orders []model.Order
	Total  decimal.Decimal
}

// NewOrdersData sorts orders newest first and sums the subtotals of every
// order that was not rejected.
func NewOrdersData(orders []model.Order) OrdersData {
	sorted := make([]model.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	total := decimal.Zero
	for _, o := range sorted {
		if o.Status != model.OrderStatusRejected {
			total = total.Add(o.Subtotal())
		}
	}
	return OrdersData{Orders: sorted, Total: total}
}

// ErrorData backs the fallback page.
type ErrorData struct {
	Message string
}
