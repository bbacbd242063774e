package transfer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ngtrphuong/ioe/internal/domain"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
	"github.com/ngtrphuong/ioe/pkg/logger"
)

// ImportResult resume una importación: filas creadas, saltadas (duplicados) y los
// errores por fila que no abortan el resto del archivo.
type ImportResult struct {
	Created int        `json:"created"`
	Skipped int        `json:"skipped"`
	Errors  []RowError `json:"errors,omitempty"`
}

// RowError error de una fila concreta del CSV.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (r *ImportResult) fail(line int, format string, args ...any) {
	r.Errors = append(r.Errors, RowError{Line: line, Message: fmt.Sprintf(format, args...)})
}

// TransferUseCase importa y exporta productos y miembros en CSV. La importación es
// fila a fila: una fila inválida se reporta y no detiene las demás.
type TransferUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	invRepo      repository.InventoryRepository
	memberRepo   repository.MemberRepository
	levelRepo    repository.MemberLevelRepository
	log          *logger.Logger
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	invRepo repository.InventoryRepository,
	memberRepo repository.MemberRepository,
	levelRepo repository.MemberLevelRepository,
	log *logger.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		invRepo:      invRepo,
		memberRepo:   memberRepo,
		levelRepo:    levelRepo,
		log:          log,
	}
}

var productHeader = []string{"barcode", "name", "price", "cost", "category", "specification", "manufacturer", "warning_level"}

// ImportProducts importa productos desde CSV. Columnas requeridas: barcode, name,
// price, cost; opcionales: category (se crea si no existe), specification,
// manufacturer, warning_level. Los códigos de barras ya existentes se saltan.
// Cada producto nuevo recibe su fila de inventario en cero.
func (uc *TransferUseCase) ImportProducts(ctx context.Context, r io.Reader, operatorID string) (*ImportResult, error) {
	records, err := decodeCSV(r)
	if err != nil {
		return nil, err
	}
	idx, err := headerIndex(records[0], "barcode", "name", "price", "cost")
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for n, row := range records[1:] {
		line := n + 2 // 1-based, tras la cabecera
		barcode := field(row, idx, "barcode")
		name := field(row, idx, "name")
		if barcode == "" || name == "" {
			result.fail(line, "barcode y name son obligatorios")
			continue
		}

		existing, err := uc.productRepo.GetByBarcode(barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		price, err := decimal.NewFromString(field(row, idx, "price"))
		if err != nil || price.IsNegative() {
			result.fail(line, "precio inválido: %s", field(row, idx, "price"))
			continue
		}
		cost, err := decimal.NewFromString(field(row, idx, "cost"))
		if err != nil || cost.IsNegative() {
			result.fail(line, "costo inválido: %s", field(row, idx, "cost"))
			continue
		}

		var warningLevel int64
		if raw := field(row, idx, "warning_level"); raw != "" {
			warningLevel, err = strconv.ParseInt(raw, 10, 64)
			if err != nil || warningLevel < 0 {
				result.fail(line, "warning_level inválido: %s", raw)
				continue
			}
		}

		categoryID, err := uc.resolveCategory(field(row, idx, "category"))
		if err != nil {
			return nil, err
		}

		now := time.Now()
		product := &entity.Product{
			ID:            uuid.New().String(),
			Barcode:       barcode,
			Name:          name,
			CategoryID:    categoryID,
			Price:         price,
			Cost:          cost,
			Specification: field(row, idx, "specification"),
			Manufacturer:  field(row, idx, "manufacturer"),
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := uc.productRepo.Create(product); err != nil {
			return nil, err
		}
		if err := uc.invRepo.Upsert(&entity.Inventory{
			ID:           uuid.New().String(),
			ProductID:    product.ID,
			WarningLevel: warningLevel,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return nil, err
		}
		result.Created++
	}

	uc.log.Info().
		Str("operator_id", operatorID).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Int("errors", len(result.Errors)).
		Msg("importación de productos finalizada")
	return result, nil
}

// ExportProducts escribe el catálogo completo en CSV con la misma forma que acepta
// la importación, de modo que un export reimportado reproduce las filas.
func (uc *TransferUseCase) ExportProducts(ctx context.Context, w io.Writer) error {
	products, err := uc.productRepo.List(repository.ProductFilter{}, 0, 0)
	if err != nil {
		return err
	}

	categories := map[string]string{}
	cats, err := uc.categoryRepo.List(false)
	if err != nil {
		return err
	}
	for _, c := range cats {
		categories[c.ID] = c.Name
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(productHeader); err != nil {
		return err
	}
	for _, p := range products {
		var warningLevel int64
		if inv, err := uc.invRepo.GetByProduct(p.ID); err == nil && inv != nil {
			warningLevel = inv.WarningLevel
		}
		row := []string{
			p.Barcode,
			p.Name,
			p.Price.StringFixed(2),
			p.Cost.StringFixed(2),
			categories[p.CategoryID],
			p.Specification,
			p.Manufacturer,
			strconv.FormatInt(warningLevel, 10),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

var memberHeader = []string{"name", "phone", "level", "email", "gender", "birthday"}

// ImportMembers importa miembros desde CSV. Columnas requeridas: name, phone;
// opcionales: level (por nombre; vacío = nivel por defecto), email, gender,
// birthday (YYYY-MM-DD). Los teléfonos ya registrados se saltan.
func (uc *TransferUseCase) ImportMembers(ctx context.Context, r io.Reader, operatorID string) (*ImportResult, error) {
	records, err := decodeCSV(r)
	if err != nil {
		return nil, err
	}
	idx, err := headerIndex(records[0], "name", "phone")
	if err != nil {
		return nil, err
	}

	levels, err := uc.levelRepo.ListActive()
	if err != nil {
		return nil, err
	}
	levelByName := make(map[string]*entity.MemberLevel, len(levels))
	var defaultLevel *entity.MemberLevel
	for _, lv := range levels {
		levelByName[lv.Name] = lv
		if lv.IsDefault {
			defaultLevel = lv
		}
	}
	if defaultLevel == nil {
		return nil, fmt.Errorf("%w: no hay nivel por defecto", domain.ErrNotFound)
	}

	result := &ImportResult{}
	for n, row := range records[1:] {
		line := n + 2
		name := field(row, idx, "name")
		phone := field(row, idx, "phone")
		if name == "" || phone == "" {
			result.fail(line, "name y phone son obligatorios")
			continue
		}

		existing, err := uc.memberRepo.GetByPhone(phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		level := defaultLevel
		if raw := field(row, idx, "level"); raw != "" {
			lv, ok := levelByName[raw]
			if !ok {
				result.fail(line, "nivel desconocido: %s", raw)
				continue
			}
			level = lv
		}

		var birthday *time.Time
		if raw := field(row, idx, "birthday"); raw != "" {
			t, err := time.Parse("2006-01-02", raw)
			if err != nil {
				result.fail(line, "fecha de nacimiento inválida: %s", raw)
				continue
			}
			birthday = &t
		}

		now := time.Now()
		if err := uc.memberRepo.Create(&entity.Member{
			ID:         uuid.New().String(),
			LevelID:    level.ID,
			Name:       name,
			Phone:      phone,
			Gender:     field(row, idx, "gender"),
			Birthday:   birthday,
			Balance:    decimal.Zero,
			TotalSpend: decimal.Zero,
			Email:      field(row, idx, "email"),
			IsActive:   true,
			CreatedBy:  operatorID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}); err != nil {
			return nil, err
		}
		result.Created++
	}

	uc.log.Info().
		Str("operator_id", operatorID).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Int("errors", len(result.Errors)).
		Msg("importación de miembros finalizada")
	return result, nil
}

// ExportMembers escribe los miembros en CSV con la misma forma que acepta la
// importación.
func (uc *TransferUseCase) ExportMembers(ctx context.Context, w io.Writer) error {
	members, err := uc.memberRepo.List(0, 0)
	if err != nil {
		return err
	}

	levels, err := uc.levelRepo.ListActive()
	if err != nil {
		return err
	}
	levelNames := make(map[string]string, len(levels))
	for _, lv := range levels {
		levelNames[lv.ID] = lv.Name
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(memberHeader); err != nil {
		return err
	}
	for _, m := range members {
		var birthday string
		if m.Birthday != nil {
			birthday = m.Birthday.Format("2006-01-02")
		}
		row := []string{m.Name, m.Phone, levelNames[m.LevelID], m.Email, m.Gender, birthday}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// resolveCategory busca la categoría por nombre o la crea; nombre vacío = sin categoría.
func (uc *TransferUseCase) resolveCategory(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	c, err := uc.categoryRepo.GetByName(name)
	if err != nil {
		return "", err
	}
	if c != nil {
		return c.ID, nil
	}
	now := time.Now()
	c = &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categoryRepo.Create(c); err != nil {
		return "", err
	}
	return c.ID, nil
}
