package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// Bootstrap creates the tables on first start. The CHECK constraints carry the
// invariants the application also checks: availability bounds, date ordering
// and the staff/matricula pairing. The availability lower bound in particular
// is the final guard against two concurrent loans draining the same last copy.
const schema = `
CREATE TABLE IF NOT EXISTS usuarios (
	id                 BIGSERIAL PRIMARY KEY,
	nome_completo      VARCHAR(100) NOT NULL,
	cpf                VARCHAR(14) NOT NULL UNIQUE,
	telefone           VARCHAR(15) NOT NULL,
	endereco           VARCHAR(200) NOT NULL,
	email              VARCHAR(100) NOT NULL UNIQUE,
	tipo               VARCHAR(20) NOT NULL DEFAULT 'cliente',
	matricula          VARCHAR(20) UNIQUE,
	limite_emprestimos INT NOT NULL DEFAULT 3,
	data_cadastro      TIMESTAMPTZ NOT NULL DEFAULT now(),
	data_atualizacao   TIMESTAMPTZ NOT NULL DEFAULT now(),
	ativo              BOOLEAN NOT NULL DEFAULT TRUE,
	CONSTRAINT check_matricula_funcionario CHECK (
		(tipo = 'funcionario' AND matricula IS NOT NULL) OR
		(tipo <> 'funcionario' AND matricula IS NULL)
	),
	CONSTRAINT check_limite_emprestimos CHECK (limite_emprestimos > 0)
);

CREATE TABLE IF NOT EXISTS categorias (
	id               BIGSERIAL PRIMARY KEY,
	nome             VARCHAR(50) NOT NULL UNIQUE,
	descricao        TEXT,
	data_cadastro    TIMESTAMPTZ NOT NULL DEFAULT now(),
	data_atualizacao TIMESTAMPTZ NOT NULL DEFAULT now(),
	ativo            BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS livros (
	id                    BIGSERIAL PRIMARY KEY,
	titulo                VARCHAR(200) NOT NULL,
	autor                 VARCHAR(100) NOT NULL,
	isbn                  VARCHAR(13) NOT NULL UNIQUE,
	editora               VARCHAR(100) NOT NULL,
	ano_publicacao        INT NOT NULL,
	edicao                VARCHAR(20),
	quantidade_total      INT NOT NULL DEFAULT 1,
	quantidade_disponivel INT NOT NULL DEFAULT 1,
	categoria_id          BIGINT NOT NULL REFERENCES categorias(id) ON DELETE CASCADE,
	localizacao           VARCHAR(50) NOT NULL,
	sinopse               TEXT,
	capa_url              VARCHAR(255),
	data_cadastro         TIMESTAMPTZ NOT NULL DEFAULT now(),
	data_atualizacao      TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT check_quantidade_disponivel CHECK (quantidade_disponivel >= 0),
	CONSTRAINT check_quantidade_total CHECK (quantidade_total >= quantidade_disponivel),
	CONSTRAINT check_ano_publicacao CHECK (ano_publicacao > 0)
);

CREATE TABLE IF NOT EXISTS emprestimos (
	id                      BIGSERIAL PRIMARY KEY,
	usuario_id              BIGINT NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
	livro_id                BIGINT NOT NULL REFERENCES livros(id) ON DELETE CASCADE,
	funcionario_id          BIGINT NOT NULL REFERENCES usuarios(id),
	data_emprestimo         TIMESTAMPTZ NOT NULL DEFAULT now(),
	data_devolucao_prevista TIMESTAMPTZ NOT NULL,
	data_devolucao_real     TIMESTAMPTZ,
	status                  VARCHAR(20) NOT NULL DEFAULT 'ativo',
	observacoes             TEXT,
	dias_emprestimo         INT NOT NULL DEFAULT 15,
	CONSTRAINT check_data_devolucao CHECK (data_devolucao_prevista > data_emprestimo),
	CONSTRAINT check_dias_emprestimo CHECK (dias_emprestimo > 0)
);

CREATE TABLE IF NOT EXISTS reservas (
	id           BIGSERIAL PRIMARY KEY,
	usuario_id   BIGINT NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
	livro_id     BIGINT NOT NULL REFERENCES livros(id) ON DELETE CASCADE,
	data_reserva TIMESTAMPTZ NOT NULL DEFAULT now(),
	data_limite  TIMESTAMPTZ NOT NULL,
	status       VARCHAR(20) NOT NULL DEFAULT 'pendente',
	prioridade   INT NOT NULL DEFAULT 1,
	CONSTRAINT check_data_limite CHECK (data_limite > data_reserva),
	CONSTRAINT check_prioridade CHECK (prioridade > 0)
);

CREATE TABLE IF NOT EXISTS multas (
	id             BIGSERIAL PRIMARY KEY,
	emprestimo_id  BIGINT NOT NULL REFERENCES emprestimos(id) ON DELETE CASCADE,
	valor          NUMERIC(10,2) NOT NULL,
	data_geracao   TIMESTAMPTZ NOT NULL DEFAULT now(),
	data_pagamento TIMESTAMPTZ,
	status         VARCHAR(20) NOT NULL DEFAULT 'pendente',
	motivo         TEXT NOT NULL,
	dias_atraso    INT NOT NULL,
	valor_por_dia  NUMERIC(10,2) NOT NULL,
	CONSTRAINT check_valor_multa CHECK (valor >= 0),
	CONSTRAINT check_dias_atraso CHECK (dias_atraso >= 0),
	CONSTRAINT check_valor_por_dia CHECK (valor_por_dia >= 0)
);

CREATE INDEX IF NOT EXISTS idx_usuario_ativo ON usuarios (ativo, tipo);
CREATE INDEX IF NOT EXISTS idx_livro_disponivel ON livros (quantidade_disponivel, categoria_id);
CREATE INDEX IF NOT EXISTS idx_emprestimo_status ON emprestimos (status, data_devolucao_prevista);
CREATE INDEX IF NOT EXISTS idx_reserva_status ON reservas (status, data_limite);
CREATE INDEX IF NOT EXISTS idx_multa_status ON multas (status, data_geracao);
`

func Bootstrap(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "bootstrap schema")
	}
	return nil
}
