package storage

import "time"

// DefaultNamespace prefijo de todas las claves de la aplicación
const DefaultNamespace = "gogoquiz_storage_key_"

// Store almacenamiento clave-valor síncrono con valores serializados en JSON.
// Las claves se prefijan internamente con el namespace de la aplicación.
type Store interface {
	// Get decodifica en dst el valor guardado bajo key. Devuelve false si no existe.
	Get(key string, dst any) (bool, error)
	// Set guarda value bajo key. Un ttl de 0 significa sin expiración.
	Set(key string, value any, ttl time.Duration) error
	Delete(key string) error
	Ping() error
}
