package repos

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	"modernc.org/sqlite"

	"eshopadmin/internal/domain"
)

// sqlite's LOWER only folds ASCII; search needs the same folding as likeArg.
const sqliteLower = "unicode_lower"

func init() {
	err := sqlite.RegisterDeterministicScalarFunction(sqliteLower, 1,
		func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			switch v := args[0].(type) {
			case nil:
				return nil, nil
			case string:
				return strings.ToLower(v), nil
			case []byte:
				return strings.ToLower(string(v)), nil
			default:
				return fmt.Sprint(v), nil
			}
		})
	if err != nil {
		panic(err)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeArg builds the %term% pattern for like. Wildcards in term match
// themselves.
func likeArg(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// like renders a case-insensitive `expr LIKE ?` clause for the open driver.
func (g *Gateway) like(expr string) string {
	lower := "LOWER"
	if g.driver == "sqlite" {
		lower = sqliteLower
	}
	return lower + "(" + expr + `) LIKE ? ESCAPE '\'`
}

func mustAffect(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "rows_affected", Err: err}
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
