package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ResponseCache --dir ../domain/apirequest --output domain/apirequest --outpkg apirequestmock --filename response_cache_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Transport --dir ../domain/apirequest --output domain/apirequest --outpkg apirequestmock --filename transport_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/table --output domain/table --outpkg tablemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Exporter --dir ../domain/table --output domain/table --outpkg tablemock --filename exporter_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name SourceRepository --dir ../domain/gamelog --output domain/gamelog --outpkg gamelogmock --filename source_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name LocationRepository --dir ../domain/gamelog --output domain/gamelog --outpkg gamelogmock --filename location_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ArenaSource --dir ../domain/gamelog --output domain/gamelog --outpkg gamelogmock --filename arena_source_mock.go
