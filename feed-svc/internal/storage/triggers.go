package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"campus-storefront/changefeed"
)

// maxNotifyBytes stays under the 8000 byte pg_notify limit; a longer payload
// would abort the writing transaction.
const maxNotifyBytes = 7900

// notifyFunction sends full row images when they fit. Oversized rows lose
// their description first, then shrink to their keys, and are flagged as
// truncated so consumers refetch them.
var notifyFunction = `
CREATE OR REPLACE FUNCTION notify_row_change() RETURNS trigger AS $$
DECLARE
	before_row jsonb;
	after_row jsonb;
	truncated boolean := false;
	payload text;
BEGIN
	IF TG_OP IN ('UPDATE', 'DELETE') THEN
		before_row := to_jsonb(OLD);
	END IF;
	IF TG_OP IN ('INSERT', 'UPDATE') THEN
		after_row := to_jsonb(NEW);
	END IF;

	FOR attempt IN 1..3 LOOP
		IF attempt = 2 THEN
			before_row := before_row - 'description';
			after_row := after_row - 'description';
			truncated := true;
		ELSIF attempt = 3 THEN
			IF before_row IS NOT NULL THEN
				before_row := jsonb_strip_nulls(jsonb_build_object('id', before_row->'id', 'product_id', before_row->'product_id', 'stock_date', before_row->'stock_date', 'customer_id', before_row->'customer_id'));
			END IF;
			IF after_row IS NOT NULL THEN
				after_row := jsonb_strip_nulls(jsonb_build_object('id', after_row->'id', 'product_id', after_row->'product_id', 'stock_date', after_row->'stock_date', 'customer_id', after_row->'customer_id'));
			END IF;
		END IF;

		payload := jsonb_build_object(
			'eventType', TG_OP,
			'table', TG_TABLE_NAME,
			'before', before_row,
			'after', after_row,
			'truncated', truncated,
			'commitTime', now()
		)::text;
		EXIT WHEN octet_length(payload) <= ` + strconv.Itoa(maxNotifyBytes) + `;
	END LOOP;

	PERFORM pg_notify('` + changefeed.NotifyChannel + `', payload);
	RETURN COALESCE(NEW, OLD);
END;
$$ LANGUAGE plpgsql`

// EnsureTriggers installs the row-change trigger on every watched table. The
// tables themselves belong to the storefront schema and must exist.
func EnsureTriggers(ctx context.Context, db *sql.DB) error {
	statements := []string{notifyFunction}
	for _, table := range changefeed.Tables() {
		statements = append(statements,
			fmt.Sprintf("DROP TRIGGER IF EXISTS row_change_notify ON %s", table),
			fmt.Sprintf(`CREATE TRIGGER row_change_notify
				AFTER INSERT OR UPDATE OR DELETE ON %s
				FOR EACH ROW EXECUTE FUNCTION notify_row_change()`, table),
		)
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure triggers: %w", err)
		}
	}
	return nil
}
