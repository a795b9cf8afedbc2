package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/j-veylop/operadoras-tui/internal/logger"
	"github.com/j-veylop/operadoras-tui/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

// UpsertOperadoras stores a batch of operadoras in one transaction. Empty
// fields never overwrite values already stored, so a list page (which only
// carries cnpj, razao_social and uf) does not erase an earlier detail record.
func (db *DB) UpsertOperadoras(ctx context.Context, ops []models.Operadora) (int, error) {
	query := `
		INSERT INTO operadoras (
			cnpj, razao_social, uf, registro_operadora, nome_fantasia, modalidade,
			logradouro, numero, complemento, bairro, cidade, cep, ddd, telefone, fax,
			endereco_eletronico, representante, cargo_representante,
			regiao_de_comercializacao, data_registro_ans, exported_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(cnpj) DO UPDATE SET
			razao_social = excluded.razao_social,
			uf = COALESCE(excluded.uf, operadoras.uf),
			registro_operadora = COALESCE(excluded.registro_operadora, operadoras.registro_operadora),
			nome_fantasia = COALESCE(excluded.nome_fantasia, operadoras.nome_fantasia),
			modalidade = COALESCE(excluded.modalidade, operadoras.modalidade),
			logradouro = COALESCE(excluded.logradouro, operadoras.logradouro),
			numero = COALESCE(excluded.numero, operadoras.numero),
			complemento = COALESCE(excluded.complemento, operadoras.complemento),
			bairro = COALESCE(excluded.bairro, operadoras.bairro),
			cidade = COALESCE(excluded.cidade, operadoras.cidade),
			cep = COALESCE(excluded.cep, operadoras.cep),
			ddd = COALESCE(excluded.ddd, operadoras.ddd),
			telefone = COALESCE(excluded.telefone, operadoras.telefone),
			fax = COALESCE(excluded.fax, operadoras.fax),
			endereco_eletronico = COALESCE(excluded.endereco_eletronico, operadoras.endereco_eletronico),
			representante = COALESCE(excluded.representante, operadoras.representante),
			cargo_representante = COALESCE(excluded.cargo_representante, operadoras.cargo_representante),
			regiao_de_comercializacao = COALESCE(excluded.regiao_de_comercializacao, operadoras.regiao_de_comercializacao),
			data_registro_ans = COALESCE(excluded.data_registro_ans, operadoras.data_registro_ans),
			exported_at = excluded.exported_at
	`

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(timeLayout)
	n := 0
	for _, op := range ops {
		cnpj := models.CleanCNPJ(op.CNPJ)
		if cnpj == "" {
			logger.Warn("skipping operadora without cnpj", "razao_social", op.RazaoSocial)
			continue
		}
		_, err := stmt.ExecContext(ctx,
			cnpj,
			op.RazaoSocial,
			nullString(op.UF),
			nullString(op.RegistroOperadora),
			nullString(op.NomeFantasia),
			nullString(op.Modalidade),
			nullString(op.Logradouro),
			nullString(op.Numero),
			nullString(op.Complemento),
			nullString(op.Bairro),
			nullString(op.Cidade),
			nullString(op.CEP),
			nullString(op.DDD),
			nullString(op.Telefone),
			nullString(op.Fax),
			nullString(op.EnderecoEletronico),
			nullString(op.Representante),
			nullString(op.CargoRepresentante),
			nullString(op.RegiaoDeComercializacao),
			nullString(op.DataRegistroANS),
			now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert operadora %s: %w", cnpj, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit operadoras: %w", err)
	}
	return n, nil
}

// UpsertDespesas stores the expense quarters of one operadora. Entries with a
// quarter outside 1..4 are skipped.
func (db *DB) UpsertDespesas(ctx context.Context, cnpj string, despesas []models.Despesa) (int, error) {
	cnpj = models.CleanCNPJ(cnpj)
	if !models.ValidCNPJ(cnpj) {
		return 0, fmt.Errorf("invalid cnpj %q", cnpj)
	}

	query := `
		INSERT INTO despesas (cnpj, ano, trimestre, valor_despesas)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(cnpj, ano, trimestre) DO UPDATE SET
			valor_despesas = excluded.valor_despesas
	`

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	n := 0
	for _, d := range despesas {
		if !d.ValidQuarter() {
			logger.Warn("skipping despesa with invalid quarter", "cnpj", cnpj, "ano", d.Ano, "trimestre", d.Trimestre)
			continue
		}
		var valor sql.NullFloat64
		if d.ValorDespesas != nil {
			valor = sql.NullFloat64{Float64: *d.ValorDespesas, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, query, cnpj, d.Ano, d.Trimestre, valor); err != nil {
			return 0, fmt.Errorf("failed to upsert despesa %s %s: %w", cnpj, d.Periodo(), err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit despesas: %w", err)
	}
	return n, nil
}

// GetOperadora returns a stored operadora, or nil if it is not in the snapshot.
func (db *DB) GetOperadora(ctx context.Context, cnpj string) (*models.Operadora, error) {
	query := `
		SELECT cnpj, razao_social, uf, registro_operadora, nome_fantasia, modalidade,
			   logradouro, numero, complemento, bairro, cidade, cep, ddd, telefone, fax,
			   endereco_eletronico, representante, cargo_representante,
			   regiao_de_comercializacao, data_registro_ans
		FROM operadoras
		WHERE cnpj = ?
	`

	var (
		op     models.Operadora
		fields [18]sql.NullString
	)
	dest := []any{&op.CNPJ, &op.RazaoSocial}
	for i := range fields {
		dest = append(dest, &fields[i])
	}

	err := db.QueryRowContext(ctx, query, models.CleanCNPJ(cnpj)).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operadora: %w", err)
	}

	targets := []*string{
		&op.UF, &op.RegistroOperadora, &op.NomeFantasia, &op.Modalidade,
		&op.Logradouro, &op.Numero, &op.Complemento, &op.Bairro, &op.Cidade,
		&op.CEP, &op.DDD, &op.Telefone, &op.Fax, &op.EnderecoEletronico,
		&op.Representante, &op.CargoRepresentante, &op.RegiaoDeComercializacao,
		&op.DataRegistroANS,
	}
	for i, t := range targets {
		*t = fields[i].String
	}

	return &op, nil
}

// GetDespesas returns the stored expenses of one operadora, newest first
// like the API.
func (db *DB) GetDespesas(ctx context.Context, cnpj string) ([]models.Despesa, error) {
	query := `
		SELECT ano, trimestre, valor_despesas
		FROM despesas
		WHERE cnpj = ?
		ORDER BY ano DESC, trimestre DESC
	`

	rows, err := db.QueryContext(ctx, query, models.CleanCNPJ(cnpj))
	if err != nil {
		return nil, fmt.Errorf("failed to query despesas: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var despesas []models.Despesa
	for rows.Next() {
		var d models.Despesa
		var valor sql.NullFloat64
		if err := rows.Scan(&d.Ano, &d.Trimestre, &valor); err != nil {
			return nil, fmt.Errorf("failed to scan despesa: %w", err)
		}
		if valor.Valid {
			v := valor.Float64
			d.ValorDespesas = &v
		}
		despesas = append(despesas, d)
	}

	return despesas, rows.Err()
}

// CountOperadoras returns how many operadoras the snapshot holds.
func (db *DB) CountOperadoras(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM operadoras").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count operadoras: %w", err)
	}
	return n, nil
}

// InsertExport records a finished export run and sets its ID.
func (db *DB) InsertExport(ctx context.Context, run *models.ExportRun) error {
	query := `
		INSERT INTO exports (
			api_url, started_at, finished_at, operadoras, despesas,
			total_despesas, media_despesas
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	finished := run.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}

	result, err := db.ExecContext(ctx, query,
		run.APIURL,
		run.StartedAt.UTC().Format(timeLayout),
		finished.UTC().Format(timeLayout),
		run.Operadoras,
		run.Despesas,
		nullFloat(run.TotalDespesas),
		nullFloat(run.MediaDespesas),
	)
	if err != nil {
		return fmt.Errorf("failed to insert export: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		run.ID = id
	}
	return nil
}

// LastExport returns the most recent export run, or nil if none exists.
func (db *DB) LastExport(ctx context.Context) (*models.ExportRun, error) {
	query := `
		SELECT id, api_url, started_at, finished_at, operadoras, despesas,
			   total_despesas, media_despesas
		FROM exports
		ORDER BY id DESC
		LIMIT 1
	`

	var (
		run              models.ExportRun
		started, finish string
		total, media     sql.NullFloat64
	)
	err := db.QueryRowContext(ctx, query).Scan(
		&run.ID, &run.APIURL, &started, &finish,
		&run.Operadoras, &run.Despesas, &total, &media,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last export: %w", err)
	}

	run.StartedAt = parseTime(started)
	run.FinishedAt = parseTime(finish)
	if total.Valid {
		run.TotalDespesas = &total.Float64
	}
	if media.Valid {
		run.MediaDespesas = &media.Float64
	}
	return &run, nil
}

// nullString returns a sql.NullString from a string.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// parseTime reads timestamps stored with timeLayout. modernc.org/sqlite may
// hand DATETIME columns back in RFC3339, so both are accepted.
func parseTime(s string) time.Time {
	for _, layout := range []string{timeLayout, time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
