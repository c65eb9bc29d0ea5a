/*
Package ports defines the driven ports of the document repository.

The interfaces decouple persistence from the model, so documents can live in
memory, on disk, in SQLite, in Badger or in Redis.

# Key Interfaces

  - DocumentStore: persists serialized XUK documents by ID.
  - DistributedLocker: serializes edits of one document across replicas.

Adapters verify themselves with RunDocumentStoreContract.
*/
package ports
