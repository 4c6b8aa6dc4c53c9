package screens

import (
	"context"
	"fmt"
)

// confirmDelete asks for confirmation and runs del. It reports whether the
// record was deleted; a declined prompt is not an error, a failed one is.
func confirmDelete(ctx context.Context, deps Deps, entity, name string, id uint, del func(context.Context, uint) error) (bool, error) {
	label := deps.t(entity)
	log := deps.Log.With().Str("entity", entity).Uint("id", id).Logger()

	if name == "" {
		name = fmt.Sprintf("#%d", id)
	}
	ok, err := deps.Confirmer.Confirm(ctx, deps.tf("confirm.delete", label, name))
	if err != nil {
		log.Error().Err(err).Msg("confirmation failed")
		deps.Notifier.Error(deps.tf("notify.delete_failed", label))
		return false, &OperationError{Op: "confirm delete", Entity: entity, Err: err}
	}
	if !ok {
		log.Debug().Msg("delete declined")
		return false, nil
	}

	if err := del(ctx, id); err != nil {
		log.Error().Err(err).Msg("delete failed")
		deps.Notifier.Error(deps.tf("notify.delete_failed", label))
		return false, &OperationError{Op: "delete", Entity: entity, Err: err}
	}
	log.Info().Msg("deleted")
	deps.Notifier.Success(deps.tf("notify.deleted", label))
	return true, nil
}

// loadFailed logs and notifies a failed list load.
func loadFailed(deps Deps, entity string, err error) error {
	deps.Log.Error().Err(err).Str("entity", entity).Msg("load failed")
	deps.Notifier.Error(deps.tf("notify.load_failed", deps.t(entity)))
	return &OperationError{Op: "list", Entity: entity, Err: err}
}
