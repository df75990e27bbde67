// seed garantiza el administrador por defecto y carga los datos de referencia de ventas mensuales
// desde un CSV "mes;valor".
//
// Uso: go run ./cmd/seed [-latin1] [ruta/vendas.csv]
// Sin ruta solo crea el administrador. Con -latin1 el CSV se lee como Windows-1252 (exportación de Excel).
// Las ventas se cargan solo si la tabla está vacía.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/database"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", false, "leer el CSV como Windows-1252")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	repos, closeDB, err := database.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer closeDB()

	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer})
	created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	log.Info().Bool("created", created).Str("email", cfg.Admin.Email).Msg("administrador")

	if flag.NArg() == 0 {
		return
	}
	csvPath := flag.Arg(0)

	existing, err := repos.Sales.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar ventas")
	}
	if len(existing) > 0 {
		log.Info().Int("sales", len(existing)).Msg("ventas ya cargadas, nada que hacer")
		return
	}

	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", csvPath).Msg("abrir CSV")
	}
	defer f.Close()

	var r io.Reader = f
	if *latin1 {
		r = transform.NewReader(f, charmap.Windows1252.NewDecoder())
	}
	sales, err := parseSales(r)
	if err != nil {
		log.Fatal().Err(err).Str("path", csvPath).Msg("leer CSV")
	}
	for _, s := range sales {
		if err := repos.Sales.Create(ctx, s); err != nil {
			log.Fatal().Err(err).Str("mes", s.Month).Msg("guardar venta")
		}
	}
	log.Info().Int("sales", len(sales)).Str("path", csvPath).Msg("ventas cargadas")
}

// parseSales lee filas "mes;valor". Una primera fila cuyo valor no es numérico se toma como cabecera.
// El valor acepta "," o "." como separador decimal.
func parseSales(r io.Reader) ([]*entity.Sale, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = 2

	var sales []*entity.Sale
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		month := strings.TrimSpace(rec[0])
		amount, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(rec[1]), ",", ".", 1))
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("línea %d: valor %q inválido", line, rec[1])
		}
		if month == "" {
			return nil, fmt.Errorf("línea %d: mes vacío", line)
		}
		sales = append(sales, &entity.Sale{ID: uuid.New().String(), Month: month, Amount: amount})
	}
	return sales, nil
}
