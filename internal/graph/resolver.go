package graph

import (
	"encoding/json"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/services"
	"github.com/graphql-go/graphql"
)

// Resolver binds schema fields to the domain services.
type Resolver struct {
	Auth          *services.AuthService
	Categories    *services.CategoryService
	Posts         *services.PostService
	Comments      *services.CommentService
	Ratings       *services.RatingService
	Reports       *services.ReportService
	Notifications *services.NotificationService
	Announcements *services.AnnouncementService
}

// result finishes a resolver: errors are classified, values pass through.
func result(p graphql.ResolveParams, v interface{}, err error) (interface{}, error) {
	if err != nil {
		return nil, toGraphQLError(p.Context, p.Info.FieldName, err)
	}
	return v, nil
}

func caller(p graphql.ResolveParams) *auth.Caller {
	return auth.FromContext(p.Context)
}

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func optionalStringArg(p graphql.ResolveParams, name string) *string {
	s, ok := p.Args[name].(string)
	if !ok {
		return nil
	}
	return &s
}

// decodeInput copies the coerced "input" argument into dst through its
// json tags. A missing input leaves dst zero so validation reports it.
func decodeInput(p graphql.ResolveParams, dst interface{}) error {
	raw, ok := p.Args["input"]
	if !ok || raw == nil {
		return nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return &Error{Message: "Entrada no válida", Code: CodeBadUserInput}
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return &Error{Message: "Entrada no válida", Code: CodeBadUserInput}
	}
	return nil
}

// Users

func (r *Resolver) obtenerUsuario(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Auth.Me(p.Context, caller(p))
	return result(p, v, err)
}

func (r *Resolver) obtenerUsuarios(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Auth.ListUsers(p.Context, caller(p))
	return result(p, v, err)
}

func (r *Resolver) nuevoUsuario(p graphql.ResolveParams) (interface{}, error) {
	var in dto.RegisterInput
	if err := decodeInput(p, &in); err != nil {
		return nil, err
	}
	v, err := r.Auth.Register(p.Context, in)
	return result(p, v, err)
}

func (r *Resolver) autenticarUsuario(p graphql.ResolveParams) (interface{}, error) {
	var in dto.AuthInput
	if err := decodeInput(p, &in); err != nil {
		return nil, err
	}
	v, err := r.Auth.Authenticate(p.Context, in)
	return result(p, v, err)
}

func (r *Resolver) actualizarUsuario(p graphql.ResolveParams) (interface{}, error) {
	var in dto.UpdateUserInput
	if err := decodeInput(p, &in); err != nil {
		return nil, err
	}
	v, err := r.Auth.UpdateProfile(p.Context, caller(p), stringArg(p, "id"), in)
	return result(p, v, err)
}

func (r *Resolver) actualizarRolUsuario(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Auth.ChangeRole(p.Context, caller(p), stringArg(p, "id"), stringArg(p, "nuevoRol"))
	return result(p, v, err)
}

// Categories

func (r *Resolver) obtenerCategorias(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Categories.List(p.Context)
	return result(p, v, err)
}

func (r *Resolver) obtenerCategoria(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Categories.Get(p.Context, stringArg(p, "id"))
	return result(p, v, err)
}

func (r *Resolver) crearCategoria(p graphql.ResolveParams) (interface{}, error) {
	var in dto.CategoryInput
	if err := decodeInput(p, &in); err != nil {
		return nil, err
	}
	v, err := r.Categories.Create(p.Context, caller(p), in)
	return result(p, v, err)
}

func (r *Resolver) actualizarCategoria(p graphql.ResolveParams) (interface{}, error) {
	var in dto.CategoryUpdateInput
	if err := decodeInput(p, &in); err != nil {
		return nil, err
	}
	v, err := r.Categories.Update(p.Context, caller(p), stringArg(p, "id"), in)
	return result(p, v, err)
}

func (r *Resolver) eliminarCategoria(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Categories.Delete(p.Context, caller(p), stringArg(p, "id"))
	return result(p, v, err)
}

// Posts

func (r *Resolver) obtenerPosts(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Posts.List(p.Context, optionalStringArg(p, "categoriaId"))
	return result(p, v, err)
}

func (r *Resolver) obtenerPost(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Posts.Get(p.Context, stringArg(p, "id"))
	return result(p, v, err)
}

func (r *Resolver) obtenerMisPosts(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Posts.Mine(p.Context, caller(p))
	return result(p, v, err)
}

func (r *Resolver) crearPost(p graphql.ResolveParams) (interface{}, error) {
	var in dto.PostInput
	if err := decodeInput(p, &in); err != nil {
		return nil, err
	}
	v, err := r.Posts.Create(p.Context, caller(p), in)
	return result(p, v, err)
}

func (r *Resolver) actualizarPost(p graphql.ResolveParams) (interface{}, error) {
	var in dto.PostUpdateInput
	if err := decodeInput(p, &in); err != nil {
		return nil, err
	}
	v, err := r.Posts.Update(p.Context, caller(p), stringArg(p, "id"), in)
	return result(p, v, err)
}

func (r *Resolver) eliminarPost(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Posts.Delete(p.Context, caller(p), stringArg(p, "id"))
	return result(p, v, err)
}

// Comments

func (r *Resolver) obtenerComentarioPorPost(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Comments.ListByPost(p.Context, stringArg(p, "postId"))
	return result(p, v, err)
}

func (r *Resolver) crearComentario(p graphql.ResolveParams) (interface{}, error) {
	var in dto.CommentInput
	if err := decodeInput(p, &in); err != nil {
		return nil, err
	}
	v, err := r.Comments.Create(p.Context, caller(p), in)
	return result(p, v, err)
}

func (r *Resolver) actualizarComentario(p graphql.ResolveParams) (interface{}, error) {
	var in dto.CommentUpdateInput
	if err := decodeInput(p, &in); err != nil {
		return nil, err
	}
	v, err := r.Comments.Update(p.Context, caller(p), stringArg(p, "id"), in)
	return result(p, v, err)
}

func (r *Resolver) eliminarComentario(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Comments.Delete(p.Context, caller(p), stringArg(p, "id"))
	return result(p, v, err)
}

// Ratings

func (r *Resolver) obtenerPuntuacionesPorPublicacion(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Ratings.ListByPost(p.Context, stringArg(p, "publicacionId"))
	return result(p, v, err)
}

func (r *Resolver) crearPuntuacion(p graphql.ResolveParams) (interface{}, error) {
	var in dto.RatingInput
	if err := decodeInput(p, &in); err != nil {
		return nil, err
	}
	v, err := r.Ratings.Create(p.Context, caller(p), in)
	return result(p, v, err)
}

func (r *Resolver) actualizarPuntuacion(p graphql.ResolveParams) (interface{}, error) {
	var in dto.RatingUpdateInput
	if err := decodeInput(p, &in); err != nil {
		return nil, err
	}
	v, err := r.Ratings.Update(p.Context, caller(p), in)
	return result(p, v, err)
}

// Reports

func (r *Resolver) obtenerReportes(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Reports.List(p.Context, caller(p))
	return result(p, v, err)
}

func (r *Resolver) reportarPublicacion(p graphql.ResolveParams) (interface{}, error) {
	var in dto.ReportInput
	if err := decodeInput(p, &in); err != nil {
		return nil, err
	}
	v, err := r.Reports.Report(p.Context, caller(p), in)
	return result(p, v, err)
}

func (r *Resolver) actualizarEstadoReporte(p graphql.ResolveParams) (interface{}, error) {
	var in dto.ReportStatusInput
	if err := decodeInput(p, &in); err != nil {
		return nil, err
	}
	v, err := r.Reports.UpdateStatus(p.Context, caller(p), in)
	return result(p, v, err)
}

// Notifications

func (r *Resolver) obtenerNotificaciones(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Notifications.List(p.Context, caller(p))
	return result(p, v, err)
}

func (r *Resolver) marcarNotificacionComoLeida(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Notifications.MarkRead(p.Context, caller(p), stringArg(p, "id"))
	return result(p, v, err)
}

func (r *Resolver) eliminarNotificacion(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Notifications.Delete(p.Context, caller(p), stringArg(p, "id"))
	return result(p, v, err)
}

// Announcements

func (r *Resolver) obtenerAnuncios(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Announcements.ListActive(p.Context)
	return result(p, v, err)
}

func (r *Resolver) crearAnuncio(p graphql.ResolveParams) (interface{}, error) {
	var in dto.AnnouncementInput
	if err := decodeInput(p, &in); err != nil {
		return nil, err
	}
	v, err := r.Announcements.Create(p.Context, caller(p), in)
	return result(p, v, err)
}

func (r *Resolver) actualizarAnuncio(p graphql.ResolveParams) (interface{}, error) {
	var in dto.AnnouncementInput
	if err := decodeInput(p, &in); err != nil {
		return nil, err
	}
	v, err := r.Announcements.Update(p.Context, caller(p), stringArg(p, "id"), in)
	return result(p, v, err)
}

func (r *Resolver) eliminarAnuncio(p graphql.ResolveParams) (interface{}, error) {
	v, err := r.Announcements.Delete(p.Context, caller(p), stringArg(p, "id"))
	return result(p, v, err)
}
