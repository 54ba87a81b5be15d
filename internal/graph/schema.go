// Package graph serves the forum's GraphQL API. Every field resolver
// delegates to exactly one service method.
package graph

import (
	"github.com/graphql-go/graphql"
)

func nonNull(t graphql.Output) graphql.Output {
	return graphql.NewNonNull(t)
}

func fields(names map[string]graphql.Output) graphql.Fields {
	out := make(graphql.Fields, len(names))
	for name, t := range names {
		out[name] = &graphql.Field{Type: t}
	}
	return out
}

func inputFields(names map[string]graphql.Input) graphql.InputObjectConfigFieldMap {
	out := make(graphql.InputObjectConfigFieldMap, len(names))
	for name, t := range names {
		out[name] = &graphql.InputObjectFieldConfig{Type: t}
	}
	return out
}

var (
	usuarioType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Usuario",
		Fields: fields(map[string]graphql.Output{
			"id":       nonNull(graphql.ID),
			"nombre":   graphql.String,
			"apellido": graphql.String,
			"email":    graphql.String,
			// Always null; stored hashes never leave the server.
			"password": graphql.String,
			"celular":  graphql.String,
			"pais":     graphql.String,
			"ciudad":   graphql.String,
			"rubro":    graphql.String,
			"creado":   graphql.String,
			"rol":      graphql.String,
		}),
	})

	tokenType = graphql.NewObject(graphql.ObjectConfig{
		Name:   "Token",
		Fields: fields(map[string]graphql.Output{"token": graphql.String}),
	})

	categoriaType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Categoria",
		Fields: fields(map[string]graphql.Output{
			"id":          nonNull(graphql.ID),
			"nombre":      graphql.String,
			"descripcion": graphql.String,
			"creado":      graphql.String,
		}),
	})

	postType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: fields(map[string]graphql.Output{
			"id":                 nonNull(graphql.ID),
			"titulo":             graphql.String,
			"contenido":          graphql.String,
			"pdfUrl":             graphql.String,
			"imagenUrl":          graphql.String,
			"autor":              usuarioType,
			"categoria":          categoriaType,
			"creado":             graphql.String,
			"promedioPuntuacion": graphql.Float,
			"numeroPuntuaciones": graphql.Int,
		}),
	})

	puntuacionType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Puntuacion",
		Fields: fields(map[string]graphql.Output{
			"id":          nonNull(graphql.ID),
			"publicacion": nonNull(postType),
			"usuario":     nonNull(usuarioType),
			"puntuacion":  nonNull(graphql.Int),
			"creado":      nonNull(graphql.String),
		}),
	})

	comentarioType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Comentario",
		Fields: fields(map[string]graphql.Output{
			"id":        nonNull(graphql.ID),
			"contenido": nonNull(graphql.String),
			"post":      nonNull(postType),
			"autor":     nonNull(usuarioType),
			"creado":    nonNull(graphql.String),
		}),
	})

	reporteType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Reporte",
		Fields: fields(map[string]graphql.Output{
			"id":            nonNull(graphql.ID),
			"usuario":       nonNull(usuarioType),
			"publicacion":   nonNull(postType),
			"motivo":        nonNull(graphql.String),
			"estado":        nonNull(graphql.String),
			"fechaCreacion": nonNull(graphql.String),
		}),
	})

	notificacionType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Notificacion",
		Fields: fields(map[string]graphql.Output{
			"id":            nonNull(graphql.ID),
			"usuario":       nonNull(usuarioType),
			"mensaje":       nonNull(graphql.String),
			"leido":         nonNull(graphql.Boolean),
			"fechaCreacion": nonNull(graphql.String),
		}),
	})

	reporteRespuestaType = graphql.NewObject(graphql.ObjectConfig{
		Name: "ReporteRespuesta",
		Fields: fields(map[string]graphql.Output{
			"success": nonNull(graphql.Boolean),
			"message": nonNull(graphql.String),
		}),
	})

	anuncioType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Anuncio",
		Fields: fields(map[string]graphql.Output{
			"id":          nonNull(graphql.ID),
			"titulo":      nonNull(graphql.String),
			"contenido":   nonNull(graphql.String),
			"imagenUrl":   graphql.String,
			"fechaInicio": nonNull(graphql.String),
			"fechaFinal":  nonNull(graphql.String),
			"creado":      graphql.String,
		}),
	})
)

var (
	reqString = graphql.NewNonNull(graphql.String)
	reqID     = graphql.NewNonNull(graphql.ID)
	reqInt    = graphql.NewNonNull(graphql.Int)

	usuarioInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UsuarioInput",
		Fields: inputFields(map[string]graphql.Input{
			"nombre":   reqString,
			"apellido": reqString,
			"password": reqString,
			"email":    reqString,
			"celular":  reqString,
			"pais":     reqString,
			"ciudad":   reqString,
			"rubro":    reqString,
			"rol":      graphql.String,
		}),
	})

	actualizarUsuarioInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ActualizarUsuarioInput",
		Fields: inputFields(map[string]graphql.Input{
			"nombre":   graphql.String,
			"apellido": graphql.String,
			"email":    graphql.String,
			"password": graphql.String,
			"celular":  graphql.String,
			"pais":     graphql.String,
			"ciudad":   graphql.String,
			"rubro":    graphql.String,
		}),
	})

	autenticarInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AutenticarInput",
		Fields: inputFields(map[string]graphql.Input{
			"email":    reqString,
			"password": reqString,
		}),
	})

	categoriaInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CategoriaInput",
		Fields: inputFields(map[string]graphql.Input{
			"nombre":      reqString,
			"descripcion": reqString,
		}),
	})

	categoriaUpdateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CategoriaUpdateInput",
		Fields: inputFields(map[string]graphql.Input{
			"nombre":      graphql.String,
			"descripcion": graphql.String,
		}),
	})

	postInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PostInput",
		Fields: inputFields(map[string]graphql.Input{
			"titulo":      reqString,
			"contenido":   reqString,
			"pdfUrl":      graphql.String,
			"imagenUrl":   graphql.String,
			"categoriaId": reqID,
		}),
	})

	postUpdateInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PostUpdateInput",
		Fields: inputFields(map[string]graphql.Input{
			"titulo":      graphql.String,
			"contenido":   graphql.String,
			"pdfUrl":      graphql.String,
			"imagenUrl":   graphql.String,
			"categoriaId": graphql.ID,
		}),
	})

	comentarioInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ComentarioInput",
		Fields: inputFields(map[string]graphql.Input{
			"contenido": reqString,
			"postId":    reqID,
			"autorId":   reqID,
		}),
	})

	updateComentarioInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "UpdateComentarioInput",
		Fields: inputFields(map[string]graphql.Input{"contenido": graphql.String}),
	})

	crearPuntuacionInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CrearPuntuacionInput",
		Fields: inputFields(map[string]graphql.Input{
			"publicacionId": reqID,
			"puntuacion":    reqInt,
		}),
	})

	actualizarPuntuacionInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ActualizarPuntuacionInput",
		Fields: inputFields(map[string]graphql.Input{
			"puntuacionId": reqID,
			"puntuacion":   reqInt,
		}),
	})

	reportarPublicacionInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ReportarPublicacionInput",
		Fields: inputFields(map[string]graphql.Input{
			"publicacionId": reqID,
			"motivo":        reqString,
		}),
	})

	actualizarEstadoReporteInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ActualizarEstadoReporteInput",
		Fields: inputFields(map[string]graphql.Input{
			"reporteId": reqID,
			"estado":    reqString,
		}),
	})

	anuncioInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AnuncioInput",
		Fields: inputFields(map[string]graphql.Input{
			"titulo":      reqString,
			"contenido":   reqString,
			"imagenUrl":   graphql.String,
			"fechaInicio": reqString,
			"fechaFinal":  reqString,
		}),
	})
)

func args(defs map[string]graphql.Input) graphql.FieldConfigArgument {
	out := make(graphql.FieldConfigArgument, len(defs))
	for name, t := range defs {
		out[name] = &graphql.ArgumentConfig{Type: t}
	}
	return out
}

var (
	idArg = args(map[string]graphql.Input{"id": reqID})

	// withInput is the common (id, input) argument pair of update mutations.
	withInput = func(in *graphql.InputObject) graphql.FieldConfigArgument {
		return args(map[string]graphql.Input{"id": reqID, "input": in})
	}
	onlyInput = func(in *graphql.InputObject) graphql.FieldConfigArgument {
		return args(map[string]graphql.Input{"input": in})
	}
)

// NewSchema builds the executable schema around r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"obtenerUsuario":    {Type: usuarioType, Resolve: r.obtenerUsuario},
			"obtenerUsuarios":   {Type: graphql.NewList(usuarioType), Resolve: r.obtenerUsuarios},
			"obtenerCategorias": {Type: graphql.NewList(categoriaType), Resolve: r.obtenerCategorias},
			"obtenerCategoria":  {Type: categoriaType, Args: idArg, Resolve: r.obtenerCategoria},
			"obtenerPosts": {
				Type:    graphql.NewList(postType),
				Args:    args(map[string]graphql.Input{"categoriaId": graphql.ID}),
				Resolve: r.obtenerPosts,
			},
			"obtenerPost":     {Type: postType, Args: idArg, Resolve: r.obtenerPost},
			"obtenerMisPosts": {Type: graphql.NewList(postType), Resolve: r.obtenerMisPosts},
			"obtenerComentarioPorPost": {
				Type:    graphql.NewList(comentarioType),
				Args:    args(map[string]graphql.Input{"postId": reqID}),
				Resolve: r.obtenerComentarioPorPost,
			},
			"obtenerPuntuacionesPorPublicacion": {
				Type:    graphql.NewList(puntuacionType),
				Args:    args(map[string]graphql.Input{"publicacionId": reqID}),
				Resolve: r.obtenerPuntuacionesPorPublicacion,
			},
			"obtenerReportes":       {Type: graphql.NewList(reporteType), Resolve: r.obtenerReportes},
			"obtenerNotificaciones": {Type: graphql.NewList(notificacionType), Resolve: r.obtenerNotificaciones},
			"obtenerAnuncios":       {Type: graphql.NewList(anuncioType), Resolve: r.obtenerAnuncios},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"nuevoUsuario": {Type: usuarioType, Args: onlyInput(usuarioInput), Resolve: r.nuevoUsuario},
			"actualizarRolUsuario": {
				Type:    usuarioType,
				Args:    args(map[string]graphql.Input{"id": reqID, "nuevoRol": reqString}),
				Resolve: r.actualizarRolUsuario,
			},
			"autenticarUsuario":           {Type: tokenType, Args: onlyInput(autenticarInput), Resolve: r.autenticarUsuario},
			"actualizarUsuario":           {Type: usuarioType, Args: withInput(actualizarUsuarioInput), Resolve: r.actualizarUsuario},
			"crearCategoria":              {Type: categoriaType, Args: onlyInput(categoriaInput), Resolve: r.crearCategoria},
			"actualizarCategoria":         {Type: categoriaType, Args: withInput(categoriaUpdateInput), Resolve: r.actualizarCategoria},
			"eliminarCategoria":           {Type: graphql.String, Args: idArg, Resolve: r.eliminarCategoria},
			"crearPost":                   {Type: postType, Args: onlyInput(postInput), Resolve: r.crearPost},
			"actualizarPost":              {Type: postType, Args: withInput(postUpdateInput), Resolve: r.actualizarPost},
			"eliminarPost":                {Type: graphql.String, Args: idArg, Resolve: r.eliminarPost},
			"crearComentario":             {Type: comentarioType, Args: onlyInput(comentarioInput), Resolve: r.crearComentario},
			"actualizarComentario":        {Type: comentarioType, Args: withInput(updateComentarioInput), Resolve: r.actualizarComentario},
			"eliminarComentario":          {Type: graphql.String, Args: idArg, Resolve: r.eliminarComentario},
			"crearPuntuacion":             {Type: puntuacionType, Args: onlyInput(crearPuntuacionInput), Resolve: r.crearPuntuacion},
			"actualizarPuntuacion":        {Type: puntuacionType, Args: onlyInput(actualizarPuntuacionInput), Resolve: r.actualizarPuntuacion},
			"reportarPublicacion":         {Type: reporteRespuestaType, Args: onlyInput(reportarPublicacionInput), Resolve: r.reportarPublicacion},
			"actualizarEstadoReporte":     {Type: reporteRespuestaType, Args: onlyInput(actualizarEstadoReporteInput), Resolve: r.actualizarEstadoReporte},
			"marcarNotificacionComoLeida": {Type: notificacionType, Args: idArg, Resolve: r.marcarNotificacionComoLeida},
			"eliminarNotificacion":        {Type: graphql.String, Args: idArg, Resolve: r.eliminarNotificacion},
			"crearAnuncio":                {Type: anuncioType, Args: onlyInput(anuncioInput), Resolve: r.crearAnuncio},
			"actualizarAnuncio":           {Type: anuncioType, Args: withInput(anuncioInput), Resolve: r.actualizarAnuncio},
			"eliminarAnuncio":             {Type: graphql.String, Args: idArg, Resolve: r.eliminarAnuncio},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}
